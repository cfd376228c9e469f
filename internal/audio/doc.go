// Package audio plays toast sounds.
//
// Sounds are resolved to assets by the sound package, decoded once with the
// beep library (WAV, OGG and MP3) and cached. Playback runs in the
// background; when the speaker cannot be used a terminal bell is rung
// instead.
package audio
