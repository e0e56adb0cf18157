package enumset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMember_MarshalJSON(t *testing.T) {
	t.Run("valued member", func(t *testing.T) {
		s := newSuitSet()
		hearts, _ := s.FindByKey("HEARTS")

		data, err := json.Marshal(hearts)
		require.NoError(t, err)
		assert.JSONEq(t, `{"set":"Suit","key":"HEARTS","ord":2,"value":"hearts"}`, string(data))
	})

	t.Run("valueless member omits value", func(t *testing.T) {
		s := New[string]("Vocab")
		none := s.MustRegisterKey("NONE")

		data, err := json.Marshal(none)
		require.NoError(t, err)
		assert.JSONEq(t, `{"set":"Vocab","key":"NONE","ord":0}`, string(data))
	})

	t.Run("zero values are kept, not omitted", func(t *testing.T) {
		s := New[int]("Scale")
		zero := s.MustRegister("ZERO", 0)

		data, err := json.Marshal(zero)
		require.NoError(t, err)
		assert.JSONEq(t, `{"set":"Scale","key":"ZERO","ord":0,"value":0}`, string(data))
	})
}

func TestMember_MarshalText(t *testing.T) {
	s := newSuitSet()
	hearts, _ := s.FindByKey("HEARTS")

	text, err := hearts.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Suit::HEARTS", string(text))

	t.Run("members work as JSON map keys", func(t *testing.T) {
		spades, _ := s.FindByKey("SPADES")
		data, err := json.Marshal(map[*Member[string]]int{hearts: 1, spades: 2})
		require.NoError(t, err)
		assert.JSONEq(t, `{"Suit::HEARTS":1,"Suit::SPADES":2}`, string(data))
	})
}

func TestMember_MarshalYAML(t *testing.T) {
	s := newSuitSet()
	hearts, _ := s.FindByKey("HEARTS")

	data, err := yaml.Marshal(hearts)
	require.NoError(t, err)
	assert.Equal(t, "Suit::HEARTS\n", string(data))
}

func TestSet_UnmarshalMember(t *testing.T) {
	s := newSuitSet()
	hearts, _ := s.FindByKey("HEARTS")

	t.Run("round trip returns the registered member", func(t *testing.T) {
		data, err := json.Marshal(hearts)
		require.NoError(t, err)

		got, err := s.UnmarshalMember(data)
		require.NoError(t, err)
		assert.Same(t, hearts, got, "deserialization must not construct a new member")
	})

	t.Run("rejects data from another set", func(t *testing.T) {
		other := New[string]("Rank")
		ace := other.MustRegister("ACE", "ace")
		data, err := json.Marshal(ace)
		require.NoError(t, err)

		_, err = s.UnmarshalMember(data)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "Rank")
	})

	t.Run("rejects unknown key", func(t *testing.T) {
		_, err := s.UnmarshalMember([]byte(`{"set":"Suit","key":"JOKER","ord":9}`))
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "JOKER")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := s.UnmarshalMember([]byte(`{"set":`))
		assert.Error(t, err)
	})
}

func TestSet_Resolve(t *testing.T) {
	s := newSuitSet()
	hearts, _ := s.FindByKey("HEARTS")

	tests := []struct {
		name    string
		text    string
		want    *Member[string]
		wantErr bool
	}{
		{"qualified form", "Suit::HEARTS", hearts, false},
		{"bare key", "HEARTS", hearts, false},
		{"wrong set prefix", "Rank::HEARTS", nil, true},
		{"unknown key", "Suit::JOKER", nil, true},
		{"empty key after prefix", "Suit::", nil, true},
		{"empty text", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Resolve(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}

	t.Run("round trip through text form", func(t *testing.T) {
		text, err := hearts.MarshalText()
		require.NoError(t, err)
		got, err := s.Resolve(string(text))
		require.NoError(t, err)
		assert.Same(t, hearts, got)
	})
}

func TestSet_MarshalJSON(t *testing.T) {
	t.Run("members in ordinal order", func(t *testing.T) {
		s := New[string]("Pair")
		s.MustRegister("A", "a")
		s.MustRegister("B", "b")
		s.Seal()

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"name": "Pair",
			"sealed": true,
			"members": [
				{"set":"Pair","key":"A","ord":0,"value":"a"},
				{"set":"Pair","key":"B","ord":1,"value":"b"}
			]
		}`, string(data))
	})

	t.Run("empty set", func(t *testing.T) {
		s := New[string]("Empty")
		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Empty","sealed":false,"members":[]}`, string(data))
	})
}
