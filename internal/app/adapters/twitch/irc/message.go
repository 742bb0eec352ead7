package irc

import "strings"

// Message is one decoded IRC line: the IRCv3 tag map, the optional
// prefix (without the leading ':'), the command verb as received and
// the parameter list. A trailing parameter, when present, is the last
// entry of Params with its leading ':' stripped.
type Message struct {
	Tags    map[string]string
	Prefix  string
	Command string
	Params  []string
}

// Trailing returns the final parameter, the only one allowed to carry
// spaces on the wire.
func (m *Message) Trailing() string {
	if len(m.Params) == 0 {
		return ""
	}
	return m.Params[len(m.Params)-1]
}

// Nick returns the sender's login taken from the prefix (the part
// before '!'), lowercased.
func (m *Message) Nick() string {
	nick := m.Prefix
	if excl := strings.IndexByte(nick, '!'); excl != -1 {
		nick = nick[:excl]
	}
	return strings.ToLower(nick)
}

// ParseMessage decodes a single wire line. A blank line or a line with
// no command verb decodes to nil; such lines signal nothing and are
// dropped without an error.
func ParseMessage(line string) *Message {
	msg := &Message{Tags: make(map[string]string)}

	if len(line) > 0 && line[0] == '@' {
		spaceIdx := strings.IndexByte(line, ' ')
		if spaceIdx == -1 {
			return nil
		}
		parseTags(line[1:spaceIdx], msg.Tags)
		line = line[spaceIdx+1:]
	}

	if len(line) > 0 && line[0] == ':' {
		spaceIdx := strings.IndexByte(line, ' ')
		if spaceIdx == -1 {
			return nil
		}
		msg.Prefix = line[1:spaceIdx]
		line = line[spaceIdx+1:]
	}

	for line != "" {
		if line[0] == ':' && msg.Command != "" {
			msg.Params = append(msg.Params, line[1:])
			break
		}

		token := line
		if spaceIdx := strings.IndexByte(line, ' '); spaceIdx != -1 {
			token, line = line[:spaceIdx], line[spaceIdx+1:]
		} else {
			line = ""
		}

		if token == "" {
			continue
		}
		if msg.Command == "" {
			msg.Command = token
			continue
		}
		msg.Params = append(msg.Params, token)
	}

	if msg.Command == "" {
		return nil
	}
	return msg
}

// parseTags scans the raw tag segment (without the '@'). A key with no
// '=' maps to the empty string; a duplicate key overwrites the earlier
// value, so the last occurrence wins.
func parseTags(raw string, tags map[string]string) {
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ';' {
			tag := raw[start:i]
			if tag != "" {
				if eq := strings.IndexByte(tag, '='); eq != -1 {
					tags[tag[:eq]] = unescapeTagValue(tag[eq+1:])
				} else {
					tags[tag] = ""
				}
			}
			start = i + 1
		}
	}
}

var tagEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\:",
	" ", "\\s",
	"\r", "\\r",
	"\n", "\\n",
)

// escapeTagValue applies the IRCv3 tag-value escapes so the value
// survives the semicolon/space-delimited tag segment.
func escapeTagValue(v string) string {
	return tagEscaper.Replace(v)
}

func unescapeTagValue(v string) string {
	if strings.IndexByte(v, '\\') == -1 {
		return v
	}

	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if v[i] != '\\' || i == len(v)-1 {
			b.WriteByte(v[i])
			continue
		}

		i++
		switch v[i] {
		case ':':
			b.WriteByte(';')
		case 's':
			b.WriteByte(' ')
		case '\\':
			b.WriteByte('\\')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		default:
			// unknown escape, keep the character and drop the backslash
			b.WriteByte(v[i])
		}
	}
	return b.String()
}
