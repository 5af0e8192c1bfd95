package tilemapping

import (
	"fmt"
)

// Leave calculates what stays on the rack after the given tiles are played.
// placed holds only newly placed tiles; bound blanks are taken from the
// blank slot. The leave comes back in machine-letter order, blanks first;
// the rack itself is not modified.
func Leave(rack *Rack, placed MachineWord) (MachineWord, error) {
	counts := make([]int, len(rack.LetArr))
	copy(counts, rack.LetArr)
	for _, t := range placed {
		idx := t.IntrinsicTileIdx()
		if int(idx) >= len(counts) || counts[idx] == 0 {
			return nil, fmt.Errorf("tile in play but not in rack: %v", idx)
		}
		counts[idx]--
	}
	leave := make(MachineWord, 0, len(rack.LetArr))
	for ml, ct := range counts {
		for i := 0; i < ct; i++ {
			leave = append(leave, MachineLetter(ml))
		}
	}
	return leave, nil
}
