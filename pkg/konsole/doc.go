// Package konsole keeps Konsole's profile in step with the KDE Plasma color
// scheme.
//
// The installer half links the repository's Konsole profiles and color
// schemes into the user's data directory and registers a systemd user
// service. That service runs `dotsetup konsole watch`, the switcher half,
// which follows kdeglobals and moves every open Konsole session to the
// Dark or Light profile.
package konsole
