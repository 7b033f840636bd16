package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Operation is a named operation offered for selection.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Label renders the option text shown in the select prompt.
func (o Operation) Label() string {
	label := fmt.Sprintf("%s %s %s", o.ID, strings.ToUpper(o.Method), o.Path)
	if o.Summary != "" {
		label += " - " + o.Summary
	}
	return label
}

// Inputs are the values the CLI needs before rendering.
type Inputs struct {
	OperationName string
	URL           string
	Humanize      bool
}

// Complete asks for every missing input. Operations, when present, are
// offered as a select list instead of free text.
func Complete(ctx context.Context, driver Driver, in Inputs, operations []Operation) (Inputs, error) {
	if driver == nil {
		return in, errors.New("prompt: driver is required")
	}

	if strings.TrimSpace(in.OperationName) == "" {
		name, err := askOperation(ctx, driver, operations)
		if err != nil {
			return in, err
		}
		in.OperationName = name
	}

	if strings.TrimSpace(in.URL) == "" {
		url, err := driver.Input(ctx, InputConfig{
			Message: "Request URL shown on the page:",
			Default: "http://localhost/",
			Help:    "Used to build the links to the other formats.",
		})
		if err != nil {
			return in, err
		}
		in.URL = url
	}

	humanize, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Humanize field labels?",
		Default: in.Humanize,
	})
	if err != nil {
		return in, err
	}
	in.Humanize = humanize
	return in, nil
}

func askOperation(ctx context.Context, driver Driver, operations []Operation) (string, error) {
	if len(operations) == 0 {
		return driver.Input(ctx, InputConfig{
			Message:   "Operation name:",
			Help:      "Shown in the page title and header.",
			Validator: requireValue,
		})
	}

	options := make([]string, len(operations))
	for i, op := range operations {
		options[i] = op.Label()
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message:  "Operation:",
		Options:  options,
		PageSize: 10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(operations) {
		return "", fmt.Errorf("prompt: invalid operation selection %d", idx)
	}
	return operations[idx].ID, nil
}

func requireValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}
