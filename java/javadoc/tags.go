package javadoc

import (
	"fmt"
	"strconv"
	"strings"
)

// TagKind identifies a recognized javadoc tag.
type TagKind int

const (
	// TagNone marks the absence of a tag, e.g. the main description
	// before any block tag.
	TagNone TagKind = -1

	TagOthers TagKind = iota - 1
	TagDeprecated
	TagParam
	TagReturn
	TagThrows
	TagException
	TagSee
	TagLink
	TagLinkplain
	TagInheritDoc
	TagValue
	TagCategory
	TagSince
	TagVersion
	TagAuthor
	TagSerial
	TagSerialData
	TagSerialField
	TagDocRoot
	TagHidden
	TagIndex
	TagAPINote
	TagImplSpec
	TagImplNote
	TagCode
	TagLiteral
	TagSummary
	TagUses
	TagProvides
	TagSnippet
	TagSystemProperty

	tagCount
)

var tagNames = [tagCount]string{
	TagOthers:         "",
	TagDeprecated:     "deprecated",
	TagParam:          "param",
	TagReturn:         "return",
	TagThrows:         "throws",
	TagException:      "exception",
	TagSee:            "see",
	TagLink:           "link",
	TagLinkplain:      "linkplain",
	TagInheritDoc:     "inheritDoc",
	TagValue:          "value",
	TagCategory:       "category",
	TagSince:          "since",
	TagVersion:        "version",
	TagAuthor:         "author",
	TagSerial:         "serial",
	TagSerialData:     "serialData",
	TagSerialField:    "serialField",
	TagDocRoot:        "docRoot",
	TagHidden:         "hidden",
	TagIndex:          "index",
	TagAPINote:        "apiNote",
	TagImplSpec:       "implSpec",
	TagImplNote:       "implNote",
	TagCode:           "code",
	TagLiteral:        "literal",
	TagSummary:        "summary",
	TagUses:           "uses",
	TagProvides:       "provides",
	TagSnippet:        "snippet",
	TagSystemProperty: "systemProperty",
}

var tagsByName = func() map[string]TagKind {
	m := make(map[string]TagKind, tagCount)
	for k := TagDeprecated; k < tagCount; k++ {
		m[tagNames[k]] = k
	}
	return m
}()

// LookupTag returns the kind for a tag name without the leading '@'.
// Unknown names map to TagOthers.
func LookupTag(name string) TagKind {
	if k, ok := tagsByName[name]; ok {
		return k
	}
	return TagOthers
}

func (k TagKind) String() string {
	switch {
	case k == TagNone:
		return "none"
	case k == TagOthers:
		return "others"
	case k > TagOthers && k < tagCount:
		return tagNames[k]
	}
	return fmt.Sprintf("TagKind(%d)", int(k))
}

// Level is the Java language level of the source being documented.
// Legacy levels use the 1.x feature number: 1.4 is Level(4).
type Level int

const (
	Java1_3 Level = 3
	Java1_4 Level = 4
	Java5   Level = 5
	Java8   Level = 8
	Java9   Level = 9
	Java15  Level = 15
	Java16  Level = 16
	Java18  Level = 18
	Java23  Level = 23

	LatestLevel = Java23
)

// ParseLevel accepts "1.4", "5", "1.8", "17" and similar spellings.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "1.")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid java level %q", s)
	}
	return Level(n), nil
}

func (l Level) String() string {
	if l < Java5 {
		return "1." + strconv.Itoa(int(l))
	}
	return strconv.Itoa(int(l))
}

type placement uint8

const (
	placeNone   placement = 0
	placeInline placement = 1
	placeBlock  placement = 2
)

// legacyPlacement applies below Java 16; a tag is legal only in
// exactly the recorded position.
var legacyPlacement = [tagCount]placement{
	TagOthers:         placeNone,
	TagDeprecated:     placeBlock,
	TagParam:          placeBlock,
	TagReturn:         placeBlock,
	TagThrows:         placeBlock,
	TagException:      placeBlock,
	TagSee:            placeBlock,
	TagLink:           placeInline,
	TagLinkplain:      placeInline,
	TagInheritDoc:     placeInline,
	TagValue:          placeInline,
	TagCategory:       placeBlock,
	TagSince:          placeBlock,
	TagVersion:        placeBlock,
	TagAuthor:         placeBlock,
	TagSerial:         placeBlock,
	TagSerialData:     placeBlock,
	TagSerialField:    placeBlock,
	TagDocRoot:        placeInline,
	TagHidden:         placeBlock,
	TagIndex:          placeInline,
	TagAPINote:        placeBlock,
	TagImplSpec:       placeBlock,
	TagImplNote:       placeBlock,
	TagCode:           placeInline,
	TagLiteral:        placeInline,
	TagSummary:        placeInline,
	TagUses:           placeBlock,
	TagProvides:       placeBlock,
	TagSnippet:        placeInline,
	TagSystemProperty: placeInline,
}

// modernPlacement applies from Java 16 on and is a bit set: {@return}
// became legal inline.
var modernPlacement = func() [tagCount]placement {
	t := legacyPlacement
	t[TagReturn] = placeBlock | placeInline
	return t
}()

// legalPlacement reports whether kind may appear inline or as a block
// tag at the given level.
func legalPlacement(kind TagKind, inline bool, level Level) bool {
	if kind <= TagOthers || kind >= tagCount {
		return true
	}
	want := placeBlock
	if inline {
		want = placeInline
	}
	if level >= Java16 {
		return modernPlacement[kind]&want != 0
	}
	return legacyPlacement[kind] == want
}

// expectsDescription lists the tags that need trailing prose.
func expectsDescription(kind TagKind) bool {
	switch kind {
	case TagAuthor, TagAPINote, TagCode, TagDeprecated, TagException, TagIndex,
		TagImplSpec, TagImplNote, TagLiteral, TagParam, TagSerial, TagSerialData,
		TagSerialField, TagSince, TagSystemProperty, TagSummary,
		TagSnippet, TagThrows, TagVersion:
		return true
	}
	return false
}

// Tag records one tag occurrence.
type Tag struct {
	Kind   TagKind
	Name   string
	Span   Span
	Inline bool
	Valid  bool
}
