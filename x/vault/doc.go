/*
Package vault implements a single-asset yield vault.

Each deposit asset has one ledger, stored under an address
derived from the asset. Depositors commit deposit assets and
receive shares at the ledger's fixed-point exchange rate.
Withdrawals run in two phases: a request burns shares and opens
a ticket that unlocks one epoch later, and a claim pays out the
burned shares at the rate in effect at claim time. The admin
raises the rate (advancing the epoch clock) and deposits yield
into custody, which is how returns reach the share holders.
*/
package vault
