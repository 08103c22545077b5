package bplist

// decodeArrayObject implements spec §4.5/§4.6's 0xA tag: cnt references,
// each objectRefSize bytes wide, big-endian, immediately following the
// (possibly extended) count.
func (d *Decoder) decodeArrayObject(off int64, cnt uint64) Value {
	refs := d.readRefs(cnt)
	if uint64(len(refs)) != cnt {
		d.setCorrupt()
	}
	items := make([]Value, len(refs))
	for i, r := range refs {
		items[i] = d.resolveRef(r)
	}
	return array(items)
}

// decodeDictObject implements spec §4.5/§4.6's 0xD tag: 2*cnt references,
// the first cnt naming keys and the second cnt naming values at the same
// position.
func (d *Decoder) decodeDictObject(off int64, cnt uint64) Value {
	refs := d.readRefs(2 * cnt)
	if uint64(len(refs)) != 2*cnt {
		d.setCorrupt()
	}

	// Key i pairs with value cnt+i; a key whose value reference is missing
	// is dropped.
	var pairs uint64
	if uint64(len(refs)) > cnt {
		pairs = uint64(len(refs)) - cnt
	}
	entries := make([]DictEntry, 0, pairs)
	for i := uint64(0); i < pairs; i++ {
		key := d.resolveRef(refs[i])
		val := d.resolveRef(refs[cnt+i])
		k := coerceKey(key)
		if k.Kind == KindCorruptRef {
			k.CorruptIndex = refs[i]
		}
		entries = append(entries, DictEntry{Key: k, Val: val})
	}
	return dict(entries)
}

// coerceKey implements spec §4.6's dict key policy: a key whose resolution
// is itself a CorruptRef, or that isn't a scalar type a forensic consumer
// could sensibly hash (an Array or Dict used as a key), is coerced to a
// CorruptRef; decodeDictObject then sets its index to the key's reference
// r, so it renders as the same "corrupt:<r>" text.
func coerceKey(key Value) Value {
	switch key.Kind {
	case KindArray, KindDict:
		return corruptRef(0)
	default:
		return key
	}
}

// readRefs reads up to n references of objectRefSize bytes each,
// big-endian, starting at the reader's current position, stopping early
// (returning fewer than n) once the file runs out of bytes to read a full
// reference from — spec §4.6's "declared count exceeds the reference
// bytes actually present" case.
func (d *Decoder) readRefs(n uint64) []uint64 {
	var refs []uint64
	for i := uint64(0); i < n; i++ {
		if d.r.pos()+int64(d.objectRefSize) > d.r.Len() {
			break
		}
		val, corrupt := readPositionalUint(d.r, d.objectRefSize)
		if corrupt {
			d.setCorrupt()
		}
		refs = append(refs, val)
	}
	return refs
}

// resolveRef implements spec §4.6: dereference a container-slot reference
// through the offset table under cycle-detection discipline.
func (d *Decoder) resolveRef(r uint64) Value {
	if r >= d.objectCount || r >= uint64(len(d.objectOffsets)) {
		d.setCorrupt()
		return corruptRef(r)
	}
	if d.objectsTraversed[r] {
		d.setCorrupt()
		return corruptRef(r)
	}

	d.objectsTraversed[r] = true
	v := d.decodeAtOffset(d.objectOffsets[r])
	delete(d.objectsTraversed, r)
	return v
}
