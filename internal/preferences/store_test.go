package preferences

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stitts-dev/weather-caddie/internal/course"
	"github.com/stitts-dev/weather-caddie/pkg/database"
)

type StoreTestSuite struct {
	suite.Suite
	db    *database.DB
	store *Store
	ctx   context.Context
}

func (s *StoreTestSuite) SetupTest() {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	sqlDB, err := gormDB.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.db = &database.DB{DB: gormDB}
	s.store, err = NewStore(s.db)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *StoreTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *StoreTestSuite) TestLoadEmpty() {
	p, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Zero(p.DriverCarry)
	s.Zero(p.IronCarry)
	s.Nil(p.LastBearing)
}

func (s *StoreTestSuite) TestSaveOverwritesWholesale() {
	bearing := 85.0
	s.Require().NoError(s.store.Save(s.ctx, &Preferences{DriverCarry: 250, IronCarry: 165, LastBearing: &bearing, ActiveProfile: "patrick"}))

	p, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(250.0, p.DriverCarry)
	s.Equal(165.0, p.IronCarry)
	s.Require().NotNil(p.LastBearing)
	s.Equal(85.0, *p.LastBearing)

	s.Require().NoError(s.store.Save(s.ctx, &Preferences{DriverCarry: 240}))

	p, err = s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(240.0, p.DriverCarry)
	s.Zero(p.IronCarry)
	s.Nil(p.LastBearing)
	s.Empty(p.ActiveProfile)

	var count int64
	s.Require().NoError(s.db.Model(&Preferences{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *StoreTestSuite) TestActiveRound() {
	_, err := s.store.ActiveRound(s.ctx)
	s.ErrorIs(err, ErrNoActiveRound)

	older := &ActiveRound{ID: "r1", StartedAt: time.Now().Add(-time.Hour), Course: "Brookridge CC", Tee: "Blue"}
	newer := &ActiveRound{
		ID:         "r2",
		StartedAt:  time.Now(),
		Course:     "Brookridge CC",
		Tee:        "White",
		Holes:      RoundHoles{{Hole: 1, Par: 4, Yardage: 350}, {Hole: 2, Par: 4, Yardage: 378}},
		GoalScore:  85,
		PlanFirst3: "fairway finders",
	}
	s.Require().NoError(s.store.SaveRound(s.ctx, older))
	s.Require().NoError(s.store.SaveRound(s.ctx, newer))

	active, err := s.store.ActiveRound(s.ctx)
	s.Require().NoError(err)
	s.Equal("r2", active.ID)
	s.Equal("White", active.Tee)
	s.Equal(85, active.GoalScore)
	s.Equal(RoundHoles{{Hole: 1, Par: 4, Yardage: 350}, {Hole: 2, Par: 4, Yardage: 378}}, active.Holes)
}

func (s *StoreTestSuite) TestRoundHolesScan() {
	var h RoundHoles
	s.Require().NoError(h.Scan([]byte(`[{"hole":3,"yardage":170}]`)))
	s.Equal(RoundHoles{course.TeeHole{Hole: 3, Yardage: 170}}, h)
	s.Require().NoError(h.Scan(nil))
	s.Nil(h)
	s.Error(h.Scan(42))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
