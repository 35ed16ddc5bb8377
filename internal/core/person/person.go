// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package person exposes the people of the catalogue and their rankings.
package person

// PersonWithRevenue is a person together with the summed revenue of the
// movies they are credited on. TotalRevenue is null when none of those
// movies has a known revenue.
type PersonWithRevenue struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Birthday     *string `json:"birthday"`
	Deathday     *string `json:"deathday"`
	Gender       *int16  `json:"gender"`
	TotalRevenue *string `json:"totalRevenue"`
}
