// Package profiles implements the JSON-backed profile store. The on-disk
// layout `{"profiles": {name: {"description", "monitors": {...}}}}` is a
// fixed external contract shared with other tooling and must not change.
package profiles

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Assignment maps one display identifier to a desired input name.
type Assignment struct {
	Display string
	Input   string
}

// Assignments preserves the JSON object key order of the monitors mapping.
// Profile application happens strictly in this order, so a plain Go map
// cannot carry it.
type Assignments []Assignment

func (a *Assignments) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("cant read monitors mapping: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("monitors must be a JSON object")
	}

	out := Assignments{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("cant read monitor key: %w", err)
		}
		display, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected monitor key token %v", keyTok)
		}
		var input string
		if err := dec.Decode(&input); err != nil {
			return fmt.Errorf("input for display %q must be a string: %w", display, err)
		}
		out = append(out, Assignment{Display: display, Input: input})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("unterminated monitors mapping: %w", err)
	}

	*a = out
	return nil
}

func (a Assignments) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, assignment := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(assignment.Display)
		if err != nil {
			return nil, fmt.Errorf("cant marshal display id: %w", err)
		}
		value, err := json.Marshal(assignment.Input)
		if err != nil {
			return nil, fmt.Errorf("cant marshal input name: %w", err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Profile is a named set of desired (display, input) assignments. The
// applicator receives it as a transient, read-only view.
type Profile struct {
	Name        string      `json:"-"`
	Description string      `json:"description"`
	Monitors    Assignments `json:"monitors"`
}

// document mirrors the full profiles JSON file, keeping profile order.
type document struct {
	profiles []*Profile
}

func (d *document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("cant read profiles document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("profiles document must be a JSON object")
	}

	d.profiles = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("cant read document key: %w", err)
		}
		key, _ := keyTok.(string)
		if key != "profiles" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return fmt.Errorf("cant skip document key %q: %w", key, err)
			}
			continue
		}

		if err := d.decodeProfiles(dec); err != nil {
			return err
		}
	}
	return nil
}

func (d *document) decodeProfiles(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("cant read profiles mapping: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("profiles must be a JSON object")
	}
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("cant read profile name: %w", err)
		}
		name, ok := nameTok.(string)
		if !ok {
			return fmt.Errorf("unexpected profile name token %v", nameTok)
		}
		profile := &Profile{}
		if err := dec.Decode(profile); err != nil {
			return fmt.Errorf("cant decode profile %q: %w", name, err)
		}
		profile.Name = name
		d.profiles = append(d.profiles, profile)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("unterminated profiles mapping: %w", err)
	}
	return nil
}

func (d *document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"profiles":{`)
	for i, profile := range d.profiles {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(profile.Name)
		if err != nil {
			return nil, fmt.Errorf("cant marshal profile name: %w", err)
		}
		body, err := json.Marshal(profile)
		if err != nil {
			return nil, fmt.Errorf("cant marshal profile %q: %w", profile.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

func (d *document) find(name string) (int, *Profile) {
	for i, profile := range d.profiles {
		if profile.Name == name {
			return i, profile
		}
	}
	return -1, nil
}
