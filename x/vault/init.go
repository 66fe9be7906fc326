package vault

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
)

const optKey = "vaults"

// GenesisVault is used to parse the json from genesis file.
type GenesisVault struct {
	Admin        iou.Address `json:"admin"`
	DepositAsset iou.Address `json:"deposit_asset"`
	ShareAsset   iou.Address `json:"share_asset"`
}

// Initializer fulfils the Initializer interface to load data
// from the genesis file.
type Initializer struct{}

var _ iou.Initializer = Initializer{}

// FromGenesis will parse initial vault info from genesis and
// save it to the database. Every vault starts at a 1:1 rate in
// epoch zero.
func (Initializer) FromGenesis(opts iou.Options, kv iou.KVStore) error {
	vaults := []GenesisVault{}
	if err := opts.ReadOptions(optKey, &vaults); err != nil {
		return err
	}
	bucket := NewVaultBucket()
	for _, v := range vaults {
		state := &VaultState{
			Admin:        v.Admin,
			DepositAsset: v.DepositAsset,
			ShareAsset:   v.ShareAsset,
			ExchangeRate: RateScale,
			CurrentEpoch: 0,
		}
		if err := state.Validate(); err != nil {
			return errors.Wrapf(err, "vault for %s", v.DepositAsset)
		}
		if err := bucket.Save(kv, VaultAddr(v.DepositAsset), state); err != nil {
			return err
		}
	}
	return nil
}
