package service

import (
	"context"
	"log"
	"time"

	"github.com/marinhotg/satshack24/internal/domain/bills"

	"gorm.io/gorm"
)

// Sweeper reverts RESERVED bills whose reservation has lapsed back to
// PENDING. Expiry is data, not a timer per bill: nothing happens between
// sweeps, and the conditional update means a receipt attached just
// before the sweep always wins.
type Sweeper struct {
	db       *gorm.DB
	interval time.Duration
}

func NewSweeper(db *gorm.DB, interval time.Duration) *Sweeper {
	return &Sweeper{db: db, interval: interval}
}

func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		log.Printf("Reservation sweeper started (interval %s)", s.interval)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.SweepOnce()
				if err != nil {
					log.Printf("Reservation sweep failed: %v", err)
				} else if n > 0 {
					log.Printf("Reservation sweep released %d expired bill(s)", n)
				}
			}
		}
	}()
}

// SweepOnce releases all expired reservations and reports how many.
func (s *Sweeper) SweepOnce() (int64, error) {
	res := s.db.Model(&bills.Bill{}).
		Where("status = ? AND reserved_until < ?", bills.StatusReserved, time.Now()).
		Updates(map[string]interface{}{
			"status":         bills.StatusPending,
			"reserved_by":    nil,
			"reserved_until": nil,
		})
	return res.RowsAffected, res.Error
}
