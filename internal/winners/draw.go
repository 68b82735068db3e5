package winners

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

var errInvalidRange = errors.New("invalid random range")

var drawRandomInt = secureRandomInt

// UpdateCurrent draws min(NextNumber, len(filtered)) distinct members from
// the filtered roster, uniformly and without replacement. The result order
// is selection order, not roster order. With auto-save enabled the draw is
// committed immediately, otherwise it is marked unsaved.
func (w *Winners) UpdateCurrent(filtered []steamapi.User) error {
	drawn, err := sample(filtered, w.NextNumber)
	if err != nil {
		return fmt.Errorf("failed to draw winners: %w", err)
	}

	w.Current = drawn
	if id, err := gonanoid.New(); err == nil {
		w.LastDrawID = id
	}

	if w.AutoSaveCurrent {
		w.SaveCurrent()
	} else {
		w.Saved = false
	}
	return nil
}

// sample is a partial Fisher-Yates shuffle: each step swaps a uniformly
// chosen remaining member into the next output slot.
func sample(roster []steamapi.User, n int) ([]steamapi.User, error) {
	if n > len(roster) {
		n = len(roster)
	}
	if n <= 0 {
		return nil, nil
	}

	pool := make([]steamapi.User, len(roster))
	copy(pool, roster)

	for i := 0; i < n; i++ {
		j, err := drawRandomInt(len(pool) - i)
		if err != nil {
			return nil, err
		}
		pool[i], pool[i+j] = pool[i+j], pool[i]
	}
	return pool[:n], nil
}

func secureRandomInt(max int) (int, error) {
	if max <= 0 {
		return 0, errInvalidRange
	}

	n, err := crand.Int(crand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
