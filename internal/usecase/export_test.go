package usecase

import (
	"time"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

const (
	SourceAPI   = sourceAPI
	SourceCache = sourceCache
)

var (
	SplitBeadings   = splitBeadings
	CheckIndex      = checkIndex
	SelectedProduct = selectedProduct
)

func (u *ReferenceUseCase) SetClock(now func() time.Time) {
	u.now = now
}

func (p ComponentPatch) Apply(door *model.Door, kind model.ComponentKind, index int, ref *model.ReferenceData) error {
	return p.apply(door, kind, index, ref)
}

func (u *DraftUseCase) SetClock(now func() time.Time) {
	u.now = now
}

var EvictionInterval = evictionInterval
