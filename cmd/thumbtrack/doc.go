// Command thumbtrack generates sprite-sheet thumbnails and WebVTT preview
// tracks for video files.
package main
