package enumset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiColor formats as its base color name, so foreground and background
// codes of the same color share a string form.
type ansiColor struct{ code int }

func (c ansiColor) String() string {
	names := map[int]string{1: "red", 2: "green", 4: "blue"}
	return names[c.code%10]
}

func TestMember_Identity(t *testing.T) {
	s := newSuitSet()

	hearts, ok := s.FindByKey("HEARTS")
	require.True(t, ok)

	t.Run("every lookup returns the same pointer", func(t *testing.T) {
		byValue, ok := s.FindByValue("hearts")
		require.True(t, ok)
		byText, ok2 := s.FindByValueString("hearts")
		require.True(t, ok2)
		byOrd, ok3 := s.FindByOrd(2)
		require.True(t, ok3)

		assert.Same(t, hearts, byValue)
		assert.Same(t, hearts, byText)
		assert.Same(t, hearts, byOrd)
		assert.True(t, hearts == byValue, "members compare with ==")
	})

	t.Run("usable as map key", func(t *testing.T) {
		scores := map[*Member[string]]int{hearts: 10}
		byOrd, _ := s.FindByOrd(2)
		assert.Equal(t, 10, scores[byOrd])
	})

	t.Run("owning set accessor", func(t *testing.T) {
		assert.Same(t, s, hearts.Set())
	})
}

func TestMember_Accessors(t *testing.T) {
	s := newSuitSet()
	m, err := s.Register("JOKERS", "jokers")
	require.NoError(t, err)

	assert.Equal(t, "JOKERS", m.Key())
	assert.Equal(t, "jokers", m.Value())
	assert.True(t, m.HasValue())
	assert.Equal(t, 4, m.Ord())
	assert.Equal(t, "jokers", m.ValueString())
}

func TestMember_String(t *testing.T) {
	t.Run("valued member shows all fields", func(t *testing.T) {
		s := newSuitSet()
		hearts, _ := s.FindByKey("HEARTS")

		str := hearts.String()
		assert.Contains(t, str, "Suit")
		assert.Contains(t, str, "HEARTS")
		assert.Contains(t, str, "2")
		assert.Contains(t, str, "hearts")
		assert.Equal(t, "Suit::HEARTS[2](hearts)", str)
	})

	t.Run("valueless member omits value", func(t *testing.T) {
		s := New[string]("Vocab")
		none := s.MustRegisterKey("NONE")
		assert.Equal(t, "Vocab::NONE[0]", none.String())
		assert.Empty(t, none.ValueString())
	})

	t.Run("non-string values format with Sprint", func(t *testing.T) {
		s := New[int]("Scale")
		thousand := s.MustRegister("THOUSAND", 1000)
		assert.Equal(t, "Scale::THOUSAND[0](1000)", thousand.String())
		assert.Equal(t, "1000", thousand.ValueString())
	})
}

func TestMember_Compare(t *testing.T) {
	s := newSuitSet()
	clubs, _ := s.FindByKey("CLUBS")
	hearts, _ := s.FindByKey("HEARTS")
	spades, _ := s.FindByKey("SPADES")

	assert.Negative(t, clubs.Compare(hearts))
	assert.Positive(t, spades.Compare(hearts))
	assert.Zero(t, hearts.Compare(hearts))
}

func TestMember_Hash(t *testing.T) {
	t.Run("stable and equal for the same member", func(t *testing.T) {
		s := newSuitSet()
		hearts, _ := s.FindByKey("HEARTS")
		byValue, _ := s.FindByValue("hearts")
		assert.Equal(t, hearts.Hash(), byValue.Hash())
		assert.Equal(t, hearts.Hash(), hearts.Hash())
	})

	t.Run("distinct members hash apart", func(t *testing.T) {
		s := newSuitSet()
		hearts, _ := s.FindByKey("HEARTS")
		spades, _ := s.FindByKey("SPADES")
		assert.NotEqual(t, hearts.Hash(), spades.Hash())
	})

	t.Run("same key in different sets hashes apart", func(t *testing.T) {
		a := New[string]("Rank")
		b := New[string]("Rank")
		ma := a.MustRegister("ACE", "ace")
		mb := b.MustRegister("ACE", "ace")
		assert.NotEqual(t, ma.Hash(), mb.Hash())
	})
}
