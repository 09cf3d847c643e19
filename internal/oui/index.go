package oui

import "fmt"

// Index — the loaded registry, partitioned by block width. Three flat maps
// plus an ordered probe replace a general prefix trie: only three discrete
// widths exist in the registry, so three O(1) probes cover every case.
// Immutable after BuildIndex; safe for concurrent readers without locking.
type Index struct {
	mal map[uint64]Record // 24-bit
	mam map[uint64]Record // 28-bit
	mas map[uint64]Record // 36-bit
}

// BuildIndex partitions records by width. Two records of the same width with
// the same prefix abort the build: the registry guarantees same-width
// uniqueness, so a collision means the source file is corrupt and a silent
// overwrite would mask it.
func BuildIndex(records []Record) (*Index, error) {
	ix := &Index{
		mal: make(map[uint64]Record),
		mam: make(map[uint64]Record),
		mas: make(map[uint64]Record),
	}
	for _, rec := range records {
		var part map[uint64]Record
		switch rec.PrefixBits {
		case BitsMAL:
			part = ix.mal
		case BitsMAM:
			part = ix.mam
		case BitsMAS:
			part = ix.mas
		default:
			return nil, fmt.Errorf("%w: unsupported width %d", ErrMalformedRecord, rec.PrefixBits)
		}
		if prev, ok := part[rec.Prefix]; ok {
			return nil, fmt.Errorf("%w: %d-bit %s claimed by %q and %q",
				ErrDuplicatePrefix, rec.PrefixBits, rec.PrefixHex(), prev.Organization, rec.Organization)
		}
		part[rec.Prefix] = rec
	}
	return ix, nil
}

// maskTop keeps the top bits of a 48-bit address, zeroing the rest.
func maskTop(addr uint64, bits uint8) uint64 {
	return addr &^ (1<<(addrBits-uint(bits)) - 1)
}

// Lookup returns the most specific record covering addr. Probe order is
// narrowest-first (36 → 28 → 24): a sub-delegated MA-S/MA-M block must win
// over the MA-L block it nests inside.
func (ix *Index) Lookup(addr uint64) (Record, bool) {
	if r, ok := ix.mas[maskTop(addr, BitsMAS)]; ok {
		return r, true
	}
	if r, ok := ix.mam[maskTop(addr, BitsMAM)]; ok {
		return r, true
	}
	if r, ok := ix.mal[maskTop(addr, BitsMAL)]; ok {
		return r, true
	}
	return Record{}, false
}

// Len returns the total number of loaded records.
func (ix *Index) Len() int { return len(ix.mal) + len(ix.mam) + len(ix.mas) }

// Counts returns per-width record counts (MA-L, MA-M, MA-S).
func (ix *Index) Counts() (mal, mam, mas int) {
	return len(ix.mal), len(ix.mam), len(ix.mas)
}

// Result — outcome of resolving one MAC address. Found=false with a nil
// error is the normal "registry has no entry" case, not a failure.
type Result struct {
	Organization string `json:"organization,omitempty"`
	Address      string `json:"address,omitempty"`
	PrefixBits   uint8  `json:"prefix_bits,omitempty"`
	Found        bool   `json:"found"`
}

// Resolve parses mac and looks it up. Returns ErrInvalidMAC (wrapped) for
// text that is not a MAC address; pure function of (index, mac).
func (ix *Index) Resolve(mac string) (Result, error) {
	addr, err := ParseMAC(mac)
	if err != nil {
		return Result{}, err
	}
	rec, ok := ix.Lookup(addr)
	if !ok {
		return Result{}, nil
	}
	return Result{
		Organization: rec.Organization,
		Address:      rec.Address,
		PrefixBits:   rec.PrefixBits,
		Found:        true,
	}, nil
}
