/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	AppName    = "BBP Pairings"
	AppVersion = "1.0.0"
	UserAgent  = "bbp-pairings/1.0.0 (+https://github.com/mikeb26/bbp-pairings)"
)
