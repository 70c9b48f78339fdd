// Package archive replays pages saved by an earlier scan.
//
// Replay re-runs detection over the stored pages so results reflect the
// current signature catalog rather than the one used at capture time.
package archive
