package memory

import "context"

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx runs fn while holding the store's transaction lock. Writes are not
// rolled back when fn fails.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.tx.Lock()
	defer t.store.tx.Unlock()
	return fn(ctx)
}
