package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlur_SetsSkills(t *testing.T) {
	backend := &fakeBackend{
		extract: func(_ context.Context, text string) ([]string, error) {
			assert.Equal(t, "  Go engineer  ", text)
			return []string{"💻 Go"}, nil
		},
	}
	s := NewSkillExtractor(backend, false)

	require.NoError(t, s.Blur(context.Background(), "  Go engineer  "))
	assert.Equal(t, []string{"💻 Go"}, s.Skills())
	assert.False(t, s.Extracting())
	assert.NoError(t, s.LastError())
}

func TestBlur_EmptyTextClearsWithoutNetwork(t *testing.T) {
	backend := &fakeBackend{
		extract: func(context.Context, string) ([]string, error) { return []string{"Go"}, nil },
	}
	s := NewSkillExtractor(backend, false)
	require.NoError(t, s.Blur(context.Background(), "Go"))
	require.Len(t, s.Skills(), 1)

	require.NoError(t, s.Blur(context.Background(), " \n\t "))
	assert.Empty(t, s.Skills())
	assert.Equal(t, []string{"extract"}, backend.Calls())
}

func TestBlur_FailureKeepsPreviousSkills(t *testing.T) {
	fail := false
	backend := &fakeBackend{
		extract: func(context.Context, string) ([]string, error) {
			if fail {
				return nil, errors.New("backend down")
			}
			return []string{"SQL"}, nil
		},
	}
	s := NewSkillExtractor(backend, false)
	require.NoError(t, s.Blur(context.Background(), "sql"))

	fail = true
	require.NoError(t, s.Blur(context.Background(), "sql again"))
	assert.Equal(t, []string{"SQL"}, s.Skills())
	assert.EqualError(t, s.LastError(), "backend down")
	assert.False(t, s.Extracting())
}

func TestBlur_LatestRequestWins(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	backend := &fakeBackend{
		extract: func(_ context.Context, text string) ([]string, error) {
			if text == "first" {
				close(firstStarted)
				<-releaseFirst
				return []string{"from first"}, nil
			}
			return []string{"from second"}, nil
		},
	}
	s := NewSkillExtractor(backend, false)

	firstErr := make(chan error, 1)
	go func() { firstErr <- s.Blur(context.Background(), "first") }()
	<-firstStarted
	assert.True(t, s.Extracting())

	require.NoError(t, s.Blur(context.Background(), "second"))
	assert.Equal(t, []string{"from second"}, s.Skills())

	// The first response arrives last and must not overwrite the second.
	close(releaseFirst)
	assert.ErrorIs(t, <-firstErr, ErrSuperseded)
	assert.Equal(t, []string{"from second"}, s.Skills())
	assert.False(t, s.Extracting())
}

func TestBlur_ClearSupersedesInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	backend := &fakeBackend{
		extract: func(context.Context, string) ([]string, error) {
			close(started)
			<-release
			return []string{"Go"}, nil
		},
	}
	s := NewSkillExtractor(backend, false)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Blur(context.Background(), "Go") }()
	<-started

	require.NoError(t, s.Blur(context.Background(), ""))
	close(release)

	assert.ErrorIs(t, <-errCh, ErrSuperseded)
	assert.Empty(t, s.Skills())
	assert.False(t, s.Extracting())
}

func TestSkills_ReturnsCopy(t *testing.T) {
	backend := &fakeBackend{
		extract: func(context.Context, string) ([]string, error) { return []string{"Go"}, nil },
	}
	s := NewSkillExtractor(backend, false)
	require.NoError(t, s.Blur(context.Background(), "Go"))

	skills := s.Skills()
	skills[0] = "changed"
	assert.Equal(t, []string{"Go"}, s.Skills())
}
