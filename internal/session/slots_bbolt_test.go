package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestBoltSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	slots, err := OpenBoltSlots(path)
	require.NoError(t, err)
	defer slots.Close()

	loaded, err := slots.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	require.NoError(t, slots.Save(Slots{Token: "abc", UserData: []byte(`{"sub":"a@b.pt"}`)}))
	loaded, err = slots.Load()
	require.NoError(t, err)
	require.Equal(t, "abc", loaded.Token)
	require.JSONEq(t, `{"sub":"a@b.pt"}`, string(loaded.UserData))

	require.NoError(t, slots.Clear())
	require.NoError(t, slots.Clear())
	loaded, err = slots.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestBoltSlots_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	slots, err := OpenBoltSlots(path)
	require.NoError(t, err)
	require.NoError(t, slots.Save(Slots{Token: "abc", UserData: []byte(`{}`)}))
	require.NoError(t, slots.Close())

	reopened, err := OpenBoltSlots(path)
	require.NoError(t, err)
	defer reopened.Close()
	loaded, err := reopened.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, "abc", loaded.Token)
}

func TestBoltSlots_HalfPairIsCleared(t *testing.T) {
	slots, err := OpenBoltSlots(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer slots.Close()

	require.NoError(t, slots.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(SlotToken), []byte("orphan"))
	}))

	loaded, err := slots.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	require.NoError(t, slots.db.View(func(tx *bbolt.Tx) error {
		require.Nil(t, tx.Bucket(sessionBucket).Get([]byte(SlotToken)))
		return nil
	}))
}
