/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// Pairing is either a bye (White only) or a decided game.
type Pairing struct {
	White string `json:"white"`
	Black string `json:"black"`
	IsBye bool   `json:"is_bye"`
}

func NewBye(id string) Pairing {
	return Pairing{White: id, IsBye: true}
}

func NewGame(white, black string) Pairing {
	return Pairing{White: white, Black: black, IsBye: black == ""}
}
