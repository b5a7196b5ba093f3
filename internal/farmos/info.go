package farmos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Info is the farm.json document.
type Info struct {
	Name                string `json:"name"`
	URL                 string `json:"url"`
	APIVersion          string `json:"api_version"`
	User                User   `json:"user"`
	MapboxAPIKey        string `json:"mapbox_api_key"`
	SystemOfMeasurement string `json:"system_of_measurement"`
	Resources           struct {
		Log LogTypes `json:"log"`
	} `json:"resources"`
}

// LogTypes returns the log bundles in server order.
func (i *Info) LogTypes() []LogType { return i.Resources.Log }

// User is the account the session belongs to.
type User struct {
	UID  FlexString `json:"uid"`
	Name string     `json:"name"`
	Mail string     `json:"mail"`
}

// LogType describes one log bundle.
type LogType struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	LabelPlural string `json:"label_plural"`
}

// LogTypes decodes either an object keyed by bundle name, keeping document
// order, or a plain array.
type LogTypes []LogType

func (l *LogTypes) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*l = nil
		return nil
	case len(b) > 0 && b[0] == '[':
		var out []LogType
		if err := json.Unmarshal(b, &out); err != nil {
			return err
		}
		*l = out
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	if tok, err := dec.Token(); err != nil {
		return err
	} else if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("log types: unexpected %v", tok)
	}
	out := LogTypes{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var entry LogType
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("log type %q: %w", name, err)
		}
		if entry.Name == "" {
			entry.Name = name
		}
		out = append(out, entry)
	}
	*l = out
	return nil
}

// FlexString accepts a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("uid: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("uid: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }
