package chunker

import "strings"

// Split cuts text into chunks of at most capacity characters, preferring
// sentence boundaries and falling back to word boundaries when a single
// sentence does not fit. Whitespace-only input yields no chunks.
func Split(text string, capacity uint) []string {
	if capacity == 0 {
		capacity = 1
	}

	var chunks []string
	var buffer strings.Builder

	flush := func() {
		content := strings.TrimSpace(buffer.String())
		if content != "" {
			chunks = append(chunks, content)
		}
		buffer.Reset()
	}

	for _, sentence := range sentences(text) {
		if uint(len(sentence)) > capacity {
			// oversized sentence, cut on word boundaries
			flush()
			for _, part := range splitWords(sentence, capacity) {
				chunks = append(chunks, part)
			}
			continue
		}

		if uint(buffer.Len()+len(sentence))+1 > capacity && buffer.Len() > 0 {
			flush()
		}
		if buffer.Len() > 0 {
			buffer.WriteString(" ")
		}
		buffer.WriteString(sentence)
	}
	flush()

	return chunks
}

// sentences splits text on sentence terminators and newlines, keeping the
// terminator with its sentence.
func sentences(text string) []string {
	var out []string
	var current strings.Builder

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			current.WriteRune(r)
			if s := strings.TrimSpace(current.String()); s != "" {
				out = append(out, s)
			}
			current.Reset()
		case '\n':
			if s := strings.TrimSpace(current.String()); s != "" {
				out = append(out, s)
			}
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		out = append(out, s)
	}

	return out
}

func splitWords(sentence string, capacity uint) []string {
	var out []string
	var buffer strings.Builder

	for _, word := range strings.Fields(sentence) {
		for uint(len(word)) > capacity {
			// pathological word longer than a whole chunk, hard cut
			if buffer.Len() > 0 {
				out = append(out, buffer.String())
				buffer.Reset()
			}
			out = append(out, word[:capacity])
			word = word[capacity:]
		}
		if word == "" {
			continue
		}

		if uint(buffer.Len()+len(word))+1 > capacity && buffer.Len() > 0 {
			out = append(out, buffer.String())
			buffer.Reset()
		}
		if buffer.Len() > 0 {
			buffer.WriteString(" ")
		}
		buffer.WriteString(word)
	}
	if buffer.Len() > 0 {
		out = append(out, buffer.String())
	}

	return out
}
