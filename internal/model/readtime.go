// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// WordsPerMinute is the reading speed behind ReadTime.
const WordsPerMinute = 200

// WordCount counts whitespace-delimited tokens.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ReadTime returns ceil(WordCount/WordsPerMinute) minutes; empty content reads in 0.
func ReadTime(content string) int64 {
	words := WordCount(content)
	return int64((words + WordsPerMinute - 1) / WordsPerMinute)
}
