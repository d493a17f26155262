package passport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewProgress(t *testing.T) {
	p := NewProgress([]string{"ejecutivo", "social"})
	assert.Equal(t, Progress{"ejecutivo": false, "social": false}, p)
	assert.Equal(t, 0, p.UnlockedCount())
}

func TestProgress_CloneIsIndependent(t *testing.T) {
	p := Progress{"ejecutivo": true}
	c := p.Clone()
	c["ejecutivo"] = false
	assert.True(t, p["ejecutivo"])
}

func TestReconcile(t *testing.T) {
	stored := Progress{"ejecutivo": true, "zeta": true, "artes": false}
	got, dropped := Reconcile(stored, []string{"ejecutivo", "social"})
	assert.Equal(t, Progress{"ejecutivo": true, "social": false}, got)
	assert.Equal(t, []string{"artes", "zeta"}, dropped)
}

func TestEncodeProgress_Format(t *testing.T) {
	data, err := EncodeProgress(Progress{"ejecutivo": true, "social": false})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ejecutivo":true,"social":false}`, string(data))

	data, err = EncodeProgress(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestDecodeProgress(t *testing.T) {
	p, err := DecodeProgress([]byte(`{"oficios":true}`))
	require.NoError(t, err)
	assert.Equal(t, Progress{"oficios": true}, p)

	p, err = DecodeProgress([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Empty(t, p)

	_, err = DecodeProgress([]byte(`{"oficios":"yes"}`))
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, found, err := s.Load(ctx, "p-1")
	require.NoError(t, err)
	assert.False(t, found)

	p := Progress{"social": true}
	require.NoError(t, s.Save(ctx, "p-1", p))
	p["social"] = false

	got, found, err := s.Load(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Progress{"social": true}, got, "stored value must not alias the caller's map")
	assert.Equal(t, 1, s.Len())
}

func TestPropertyProgressRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := Progress(rapid.MapOf(rapid.StringMatching(`[a-z]{1,10}`), rapid.Bool()).Draw(t, "progress"))
		data, err := EncodeProgress(p)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := DecodeProgress(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got) != len(p) {
			t.Fatalf("got %d keys, want %d", len(got), len(p))
		}
		for k, v := range p {
			if got[k] != v {
				t.Fatalf("key %q: got %v want %v", k, got[k], v)
			}
		}
	})
}
