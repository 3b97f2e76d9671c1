package locale

import (
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadEmbedded(t *testing.T) Catalogs {
	t.Helper()
	c, err := LoadEmbedded()
	require.NoError(t, err)
	return c
}

func TestLoadEmbedded(t *testing.T) {
	c := loadEmbedded(t)
	require.Len(t, c, 2)

	assert.Equal(t, "Experience the", c[EN]["hero.title1"])
	assert.Equal(t, "Vivencie um", c[PT]["hero.title1"])
	assert.Equal(t, "Carteira", c[PT]["interface.screens.wallet"])
	assert.Equal(t, c[EN].Keys(), c[PT].Keys())
}

func TestLoadFromFS_KeyMismatch(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  a: A\n  b: B\n")},
		"locales/pt.yaml": {Data: []byte("locale: pt-BR\nmessages:\n  a: A\n")},
	}
	_, err := LoadFromFS(fsys)
	require.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "b")
}

func TestLoadFromFS_MissingLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  a: A\n")},
	}
	_, err := LoadFromFS(fsys)
	require.Error(t, err)
}

func TestLoadFromFS_Malformed(t *testing.T) {
	cases := map[string]string{
		"bad yaml":    "locale: en\nmessages: [",
		"bad locale":  "locale: xx-!!\nmessages:\n  a: A\n",
		"unsupported": "locale: de\nmessages:\n  a: A\n",
		"bad value":   "locale: en\nmessages:\n  a: [1, 2]\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"locales/en.yaml": {Data: []byte(data)}}
			_, err := LoadFromFS(fsys)
			require.Error(t, err)
		})
	}
}

func TestStore_ToggleRoundTrip(t *testing.T) {
	c := loadEmbedded(t)
	s := NewStore(c, EN, nil)

	before := map[string]string{}
	for _, k := range c[EN].Keys() {
		before[k] = s.T(k)
	}

	pt := s.Toggle()
	assert.Equal(t, PT, pt.Tag)
	for _, k := range c[PT].Keys() {
		require.Equal(t, c[PT][k], s.T(k), k)
	}

	en := s.Toggle()
	assert.Equal(t, EN, en.Tag)
	for k, v := range before {
		require.Equal(t, v, s.T(k), k)
	}
}

func TestStore_SnapshotIsImmutableAcrossToggle(t *testing.T) {
	s := NewStore(loadEmbedded(t), EN, nil)
	snap := s.Snapshot()
	s.Toggle()

	assert.Equal(t, EN, snap.Tag)
	assert.Equal(t, "Fluid Future", snap.T("hero.title2"))
	assert.Equal(t, "Futuro Fluido", s.T("hero.title2"))
}

func TestStore_SetAndSubscribe(t *testing.T) {
	s := NewStore(loadEmbedded(t), EN, nil)

	var got []Tag
	s.Subscribe(func(snap *Snapshot) { got = append(got, snap.Tag) })

	s.Set(EN)
	s.Set(PT)
	s.Toggle()
	assert.Equal(t, []Tag{PT, EN}, got)
	assert.Equal(t, EN, s.Tag())
}

func TestStore_SubscriberMayChangeLanguage(t *testing.T) {
	s := NewStore(loadEmbedded(t), EN, nil)

	var got []Tag
	s.Subscribe(func(snap *Snapshot) {
		got = append(got, snap.Tag)
		if snap.Tag == PT {
			s.Set(EN)
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Toggle()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Toggle did not return while a subscriber changed the language")
	}
	assert.Equal(t, []Tag{PT, EN}, got)
	assert.Equal(t, EN, s.Tag())
}

func TestStore_UnknownKeyFallsBack(t *testing.T) {
	s := NewStore(loadEmbedded(t), PT, nil)
	assert.Equal(t, "no.such.key", s.T("no.such.key"))
}

func TestStore_ConcurrentReadersSeeWholeTables(t *testing.T) {
	c := loadEmbedded(t)
	s := NewStore(c, EN, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				snap := s.Snapshot()
				want := c[snap.Tag]
				if snap.T("hero.title1") != want["hero.title1"] || snap.T("cta.btn2") != want["cta.btn2"] {
					t.Errorf("mixed snapshot for %s", snap.Tag)
					return
				}
			}
		}()
	}
	for i := 0; i < 200; i++ {
		s.Toggle()
	}
	wg.Wait()
}

func TestNegotiate(t *testing.T) {
	cases := map[string]Tag{
		"":                        EN,
		"en_US.UTF-8":             EN,
		"pt_BR.UTF-8":             PT,
		"pt-BR":                   PT,
		"pt":                      PT,
		"pt-BR,pt;q=0.9,en;q=0.8": PT,
		"en-GB,en;q=0.8":          EN,
	}
	for pref, want := range cases {
		assert.Equal(t, want, Negotiate(pref), pref)
	}
}

func TestTag(t *testing.T) {
	assert.Equal(t, PT, EN.Other())
	assert.Equal(t, EN, PT.Other())
	assert.Equal(t, "pt-BR", PT.String())
	assert.Equal(t, "en", EN.String())
}
