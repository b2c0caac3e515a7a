package content

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Chapters is the number of chapters an item id may refer to.
const Chapters = 114

var ErrInvalidItemID = errors.New("item id must be chapter:verse")

// ParseItemID splits an id of the form "chapter:verse". Numbers must be in
// canonical form, so "02:255" is rejected.
func ParseItemID(id string) (chapter, verse int, err error) {
	ch, v, ok := strings.Cut(id, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidItemID, id)
	}
	chapter, err = strconv.Atoi(ch)
	if err != nil || chapter < 1 || chapter > Chapters || strconv.Itoa(chapter) != ch {
		return 0, 0, fmt.Errorf("%w: chapter out of range in %q", ErrInvalidItemID, id)
	}
	verse, err = strconv.Atoi(v)
	if err != nil || verse < 1 || strconv.Itoa(verse) != v {
		return 0, 0, fmt.Errorf("%w: verse out of range in %q", ErrInvalidItemID, id)
	}
	return chapter, verse, nil
}
