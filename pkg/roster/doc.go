// Package roster reads class rosters from .xlsx and .csv files.
//
// The header row must name the roll number and profile columns
// (roll_number and leetcode_profile by default). Other columns are ignored.
// Values are kept as the strings the sheet shows; nothing is validated here.
package roster
