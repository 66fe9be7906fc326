/*
Package iou defines all common interfaces that tie the vault engine
together, as well as implementations of some of the simpler components.

The root package holds the building blocks shared by every extension:
addresses and conditions (deterministic, content-derived identities),
transactions and messages, the handler and decorator interfaces, the
key-value store interface family and the dispatch context helpers.

The actual business logic lives in the extension packages under x/:
x/vault implements the share-token vault ledger and the epoch-gated
withdrawal protocol, x/token implements the asset custody it delegates
value movement to.
*/
package iou
