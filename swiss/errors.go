/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "fmt"

// InputError reports a missing or malformed field of a tournament snapshot.
type InputError struct {
	Field string
	Msg   string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%v: %v", e.Field, e.Msg)
}

// AlgorithmError means matching could not find an opponent for PlayerID.
// Bye allocation should make this impossible, so it always points at a bug.
type AlgorithmError struct {
	PlayerID string
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("No valid opponent found for player %v", e.PlayerID)
}

func inputErrorf(field string, format string, a ...any) *InputError {
	return &InputError{Field: field, Msg: fmt.Sprintf(format, a...)}
}
