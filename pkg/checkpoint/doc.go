/*
Package checkpoint persists data container snapshots during pipeline runs.

A Store holds encoded snapshots under string keys. RedisStore shares
snapshots across processes; MemoryStore backs tests and single-process
use.

The Saver step is a pass-through pipeline step that persists every
container it transforms. Keys combine the saver name, the container's
summary ID and a per-save sequence number, so a multi-epoch run keeps
one snapshot per epoch. Combined with EpochRepeater or a Trainer it
snapshots training data between epochs:

	store, err := checkpoint.NewRedisStore(checkpoint.RedisConfig{
		Redis: redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
	})
	saver := checkpoint.NewSaver(store)

	p := pipeline.New("train", shuffler, saver, model)

Snapshots are fetched back with Saver.Load (Saver.LastKey gives the key
of the most recent save) or decoded directly from store bytes with
Decode.

Only containers whose sample values are *data.NDArray, float64 or string
can be encoded.
*/
package checkpoint
