// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects resolved beam rows with --filter expressions.
//
// Filters are key-operator-target expressions joined by a delimiter (default
// comma, override with RCBEAM_FILTER_DELIM). Operators, each negatable with a
// leading '!':
//
//   - = : exact match
//   - ^ : prefix match
//   - ~ : case-insensitive match
//   - < : less than (numeric when the value is a number)
//   - > : greater than (numeric when the value is a number)
//   - @ : contains substring
//   - / : regular expression match
//
// Examples:
//
//   - "height>500" : beams taller than 500
//   - "concrete=RC大梁" : beams on the default concrete layer
//   - "file/^floor-2" : files whose name matches the regex
//   - "total!=0" : beams with at least one bar
//
// Keys are matched against the output keys of the selected attrs first, so a
// renamed column filters by its new name. Otherwise the key is taken as a
// column alias (see attrs.Aliases) or a path into the row.
package filters
