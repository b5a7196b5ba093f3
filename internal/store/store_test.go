package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	s := New().Snapshot()
	assert.Equal(t, "metric", s.SystemOfMeasurement)
	assert.Equal(t, LoggedOut, s.Status)
	assert.False(t, s.IsLoggedIn)
	assert.Empty(t, s.Errors)
}

func TestSetters(t *testing.T) {
	s := New()
	s.SetFarmName("Green Acres")
	s.SetFarmURL("https://farm.example.com")
	s.SetUsername("farmer")
	s.SetEmail("farmer@example.com")
	s.SetUID("7")
	s.SetMapboxAPIKey("pk.123")
	s.SetSystemOfMeasurement("us")
	s.SetLogTypes([]LogType{{Name: "farm_activity", Label: "Activity"}})
	s.SetLoginStatus(true)
	s.SetUseGeolocation(true)
	s.SetSessionStatus(LoggedIn)

	got := s.Snapshot()
	assert.Equal(t, State{
		FarmName:            "Green Acres",
		FarmURL:             "https://farm.example.com",
		Username:            "farmer",
		Email:               "farmer@example.com",
		UID:                 "7",
		MapboxAPIKey:        "pk.123",
		SystemOfMeasurement: "us",
		LogTypes:            []LogType{{Name: "farm_activity", Label: "Activity"}},
		IsLoggedIn:          true,
		UseGeolocation:      true,
		Status:              LoggedIn,
	}, got)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	types := []LogType{{Name: "farm_seeding"}}
	s.SetLogTypes(types)
	types[0].Name = "mutated"

	snap := s.Snapshot()
	require.Len(t, snap.LogTypes, 1)
	assert.Equal(t, "farm_seeding", snap.LogTypes[0].Name)

	snap.LogTypes[0].Name = "also mutated"
	assert.Equal(t, "farm_seeding", s.Snapshot().LogTypes[0].Name)
}

func TestSubscribe(t *testing.T) {
	s := New()
	var got []string
	unsubscribe := s.Subscribe(func(mutation string, st State) {
		got = append(got, mutation)
		if mutation == MutLogError {
			assert.Len(t, st.Errors, 1, "listener sees state after the mutation")
		}
	})

	s.SetUsername("farmer")
	s.LogError(ErrorRecord{Message: "boom", Level: "warning", Show: true})
	unsubscribe()
	s.SetEmail("ignored@example.com")

	assert.Equal(t, []string{MutUsername, MutLogError}, got)
}

func TestSubscribe_NotifiesInSubscriptionOrder(t *testing.T) {
	s := New()
	var order []string
	for _, name := range []string{"nav", "header", "map", "logs", "settings"} {
		name := name
		s.Subscribe(func(string, State) { order = append(order, name) })
	}
	dropMap := s.Subscribe(func(string, State) { order = append(order, "late") })
	dropMap()

	for n := 0; n < 3; n++ {
		order = order[:0]
		s.SetFarmName("Green Acres")
		assert.Equal(t, []string{"nav", "header", "map", "logs", "settings"}, order)
	}
}

func TestListenerMayReadStore(t *testing.T) {
	s := New()
	var seen string
	s.Subscribe(func(string, State) { seen = s.Snapshot().Username })
	s.SetUsername("farmer")
	assert.Equal(t, "farmer", seen)
}

func TestConcurrentSetters(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.LogError(ErrorRecord{Message: "x"})
		}()
	}
	wg.Wait()
	assert.Len(t, s.Snapshot().Errors, 50)
}

func TestSessionStatusString(t *testing.T) {
	assert.Equal(t, "logged in", LoggedIn.String())
	assert.Equal(t, "logged out", LoggedOut.String())
}
