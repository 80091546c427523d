package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-api/internal/pkg/idgen"
)

type IDGenTestSuite struct {
	suite.Suite
}

func TestIDGenSuite(t *testing.T) {
	suite.Run(t, new(IDGenTestSuite))
}

func (s *IDGenTestSuite) TestSequential() {
	gen := idgen.NewSequential("pilot")
	s.Equal("pilot_1", gen.Generate())
	s.Equal("pilot_2", gen.Generate())

	bare := idgen.NewSequential("")
	s.Equal("1", bare.Generate())
}

func (s *IDGenTestSuite) TestPrefixed() {
	gen := idgen.NewPrefixed("enc")
	first := gen.Generate()
	second := gen.Generate()

	s.True(strings.HasPrefix(first, "enc_"))
	s.Len(strings.Split(first, "_"), 3)
	s.NotEqual(first, second)
}

func (s *IDGenTestSuite) TestUUID() {
	gen := idgen.NewUUID("statblock")
	id := gen.Generate()

	s.True(strings.HasPrefix(id, "statblock_"))
	s.Len(strings.TrimPrefix(id, "statblock_"), 36)
	s.NotEqual(id, gen.Generate())
}
