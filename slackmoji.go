// Package slackmoji downloads custom emoji from a saved Slack
// "customize emoji" page into a local directory, one file per emoji.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, fs/).
package slackmoji
