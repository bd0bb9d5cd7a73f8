package word

// Decode frames a big-endian byte stream into words.
func Decode(data []byte) (words []Word, err error) {
	if len(data)%SIZE != 0 {
		err = ErrStreamLength
		return
	}

	words = make([]Word, 0, len(data)/SIZE)
	for n := 0; n < len(data); n += SIZE {
		words = append(words, FromBytes(data[n:n+SIZE]))
	}

	return
}

// Encode serializes words into a big-endian byte stream.
func Encode(words []Word) (data []byte) {
	data = make([]byte, 0, len(words)*SIZE)
	for _, w := range words {
		data = Endian.AppendUint32(data, uint32(w))
	}

	return
}
