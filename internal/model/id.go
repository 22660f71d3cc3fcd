// Package model defines database models
package model

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// assignID fills id with a fresh nanoid unless the caller already set one
func assignID(id *string) error {
	if *id != "" {
		return nil
	}

	v, err := gonanoid.New()
	if err != nil {
		return err
	}

	*id = v
	return nil
}
