package generation

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/deppfellow/seedance-go/validation"
)

// ContentType is the wire tag of a content item.
type ContentType string

const (
	ContentText      ContentType = "text"
	ContentImageURL  ContentType = "image_url"
	ContentDraftTask ContentType = "draft_task"
)

// ImageRole says how the generator uses an image item.
type ImageRole string

const (
	RoleFirstFrame     ImageRole = "first_frame"
	RoleLastFrame      ImageRole = "last_frame"
	RoleReferenceImage ImageRole = "reference_image"
)

// ContentItem is one entry of the content array. The concrete types are
// TextContent, ImageContent and DraftTaskContent.
type ContentItem interface {
	Type() ContentType
	isContentItem()
}

// TextContent is a text prompt.
type TextContent struct {
	Text string
}

// ImageContent is an image given by URL or base64 data URI.
type ImageContent struct {
	URL  string
	Role ImageRole
}

// DraftTaskContent turns an earlier draft task into a full render.
type DraftTaskContent struct {
	ID string
}

// Text returns a text content item.
func Text(text string) ContentItem { return TextContent{Text: text} }

// Image returns an image content item. role may be empty.
func Image(url string, role ImageRole) ContentItem { return ImageContent{URL: url, Role: role} }

// DraftTask returns a draft task content item.
func DraftTask(id string) ContentItem { return DraftTaskContent{ID: id} }

func (TextContent) Type() ContentType      { return ContentText }
func (ImageContent) Type() ContentType     { return ContentImageURL }
func (DraftTaskContent) Type() ContentType { return ContentDraftTask }

func (TextContent) isContentItem()      {}
func (ImageContent) isContentItem()     {}
func (DraftTaskContent) isContentItem() {}

type urlRef struct {
	URL string `json:"url"`
}

type idRef struct {
	ID string `json:"id"`
}

func (c TextContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type ContentType `json:"type"`
		Text string      `json:"text"`
	}{ContentText, c.Text})
}

func (c ImageContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     ContentType `json:"type"`
		ImageURL urlRef      `json:"image_url"`
		Role     ImageRole   `json:"role,omitempty"`
	}{ContentImageURL, urlRef{c.URL}, c.Role})
}

func (c DraftTaskContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      ContentType `json:"type"`
		DraftTask idRef       `json:"draft_task"`
	}{ContentDraftTask, idRef{c.ID}})
}

var itemKeys = map[ContentType][]string{
	ContentText:      {"text", "type"},
	ContentImageURL:  {"image_url", "role", "type"},
	ContentDraftTask: {"draft_task", "type"},
}

// decodeContentItem decodes one wire item. A nil item means the tag was
// missing or unknown; the returned violations say why.
func decodeContentItem(index int, raw json.RawMessage) (ContentItem, validation.Violations) {
	path := fmt.Sprintf("content[%d]", index)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, validation.Violations{mismatch(path, "object")}
	}

	rawType, ok := obj["type"]
	if !ok || isNull(rawType) {
		return nil, validation.Violations{{
			Field:    path + ".type",
			Kind:     validation.KindType,
			Message:  "is required",
			Expected: "one of: text, image_url, draft_task",
		}}
	}

	var typ ContentType
	if err := json.Unmarshal(rawType, &typ); err != nil {
		return nil, validation.Violations{mismatch(path+".type", "string")}
	}

	allowed, ok := itemKeys[typ]
	if !ok {
		return nil, validation.Violations{{
			Field:    path + ".type",
			Kind:     validation.KindType,
			Message:  "must be one of: text, image_url, draft_task",
			Expected: "one of: text, image_url, draft_task",
		}}
	}

	var vs validation.Violations
	for _, key := range sortedKeys(obj) {
		if !slices.Contains(allowed, key) {
			vs = append(vs, unknownField(path+"."+key, fmt.Sprintf("is not allowed on %s items", typ)))
		}
	}

	switch typ {
	case ContentText:
		var item TextContent
		vs = append(vs, decodeString(path+".text", obj["text"], &item.Text)...)
		return item, vs

	case ContentImageURL:
		var item ImageContent
		vs = append(vs, decodeRef(path+".image_url", "url", obj["image_url"], &item.URL)...)
		var role string
		vs = append(vs, decodeString(path+".role", obj["role"], &role)...)
		item.Role = ImageRole(role)
		return item, vs

	default:
		var item DraftTaskContent
		vs = append(vs, decodeRef(path+".draft_task", "id", obj["draft_task"], &item.ID)...)
		return item, vs
	}
}

// decodeRef decodes an object holding exactly one string key, such as
// {"url": "..."}.
func decodeRef(path, key string, raw json.RawMessage, dst *string) validation.Violations {
	if raw == nil || isNull(raw) {
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return validation.Violations{mismatch(path, "object")}
	}

	var vs validation.Violations
	for _, k := range sortedKeys(obj) {
		if k != key {
			vs = append(vs, unknownField(path+"."+k, "is not a recognized field"))
		}
	}
	return append(vs, decodeString(path+"."+key, obj[key], dst)...)
}
