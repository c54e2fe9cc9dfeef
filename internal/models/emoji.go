package models

// ProfileEmojis is the allow-list of profile avatars; the first entry is the default
var ProfileEmojis = []string{
	"🦁", "🐝", "🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼",
	"🐨", "🐯", "🐮", "🐷", "🐸", "🐵", "🐔", "🐧", "🐦", "🦆",
	"🦅", "🦉", "🦇", "🐺", "🐗", "🐴", "🦄", "🐢", "🐍", "🦎",
	"🐠", "🐟", "🐬", "🐳", "🐋", "🦈", "🐊",
}

const DefaultProfileEmoji = "🦁"

var profileEmojiSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(ProfileEmojis))
	for _, e := range ProfileEmojis {
		set[e] = struct{}{}
	}
	return set
}()

func IsAllowedProfileEmoji(s string) bool {
	_, ok := profileEmojiSet[s]
	return ok
}
