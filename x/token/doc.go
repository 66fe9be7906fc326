/*
Package token implements a minimal multi-asset custody ledger.

Every account address maps to a wallet holding uint64 balances
per asset. Other extensions use the Controller interface to
move, issue and destroy tokens, while SendMsg exposes plain
transfers between accounts.
*/
package token
