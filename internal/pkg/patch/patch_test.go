package patch_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-api/internal/pkg/patch"
)

type PatchTestSuite struct {
	suite.Suite
}

func TestPatchSuite(t *testing.T) {
	suite.Run(t, new(PatchTestSuite))
}

func (s *PatchTestSuite) TestZeroValueIsUnchanged() {
	var f patch.Field[string]
	current := "Wolf"

	s.False(f.IsPresent())
	s.False(f.IsSet())
	s.False(f.IsClear())
	s.Equal(&current, f.Apply(&current))
	s.Equal(patch.Unchanged[string](), f)
}

func (s *PatchTestSuite) TestSet() {
	f := patch.Set("Kell Hounds")
	current := "Wolf"

	s.True(f.IsPresent())
	s.True(f.IsSet())
	v, ok := f.Value()
	s.True(ok)
	s.Equal("Kell Hounds", v)

	applied := f.Apply(&current)
	s.Require().NotNil(applied)
	s.Equal("Kell Hounds", *applied)
	s.Equal("Wolf", current, "apply must not write through the current pointer")
}

func (s *PatchTestSuite) TestClear() {
	f := patch.Clear[int]()
	current := 7

	s.True(f.IsPresent())
	s.True(f.IsClear())
	_, ok := f.Value()
	s.False(ok)
	s.Nil(f.Apply(&current))
}

func (s *PatchTestSuite) TestSetOnNilCurrent() {
	f := patch.Set([]string{"double_blind"})
	applied := f.Apply(nil)
	s.Require().NotNil(applied)
	s.Equal([]string{"double_blind"}, *applied)
}
