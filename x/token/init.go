package token

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
)

const optKey = "tokens"

// GenesisAccount is used to parse the json from genesis file.
// Using iou.Address, so addresses are hex, not base64.
type GenesisAccount struct {
	Address iou.Address `json:"address"`
	Set
}

// Initializer fulfils the Initializer interface to load data
// from the genesis file.
type Initializer struct{}

var _ iou.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database.
func (Initializer) FromGenesis(opts iou.Options, kv iou.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrap(err, "address")
		}
		wallet := NewWallet(acct.Address)
		for _, t := range acct.Set.GetTokens() {
			if err := wallet.Add(t.Asset, t.Amount); err != nil {
				return errors.Wrapf(err, "account %s", acct.Address)
			}
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return err
		}
	}
	return nil
}
