// SPDX-License-Identifier: Unlicense OR MIT

package attribute

import "sync"

// typeInfo is the registered metadata for one attribute Type: its value
// representation, which Analysis flags it affects, how an Iterator should
// merge it with overlapping attributes of the same type, and (for
// KindPointer types) its copy/destroy/equal/serialize vtable.
type typeInfo struct {
	name        string
	kind        Kind
	affectsAnal bool
	merge       MergePolicy
	callbacks   PointerCallbacks
}

// registry is the process-wide, monotonically-growing table of attribute
// types (spec.md §5 "Shared process-wide state"). Registration is rare and
// lookups must never block a hot iteration path, so a single RWMutex
// guarding a plain map is sufficient -- there is no need for a
// copy-on-write structure at the scale this module operates at.
type registry struct {
	mu    sync.RWMutex
	byID  map[Type]typeInfo
	names map[string]Type
	next  Type
}

var globalRegistry = newRegistry()

func newRegistry() *registry {
	r := &registry{
		byID:  make(map[Type]typeInfo),
		names: make(map[string]Type),
		next:  firstCustomType,
	}
	for t, info := range builtinTypeInfo {
		r.byID[t] = info
		r.names[info.name] = t
	}
	return r
}

// RegisterType adds a new attribute type to the process-wide registry and
// returns its Type id. It returns (0, false) if name is already registered,
// mirroring "registering an unknown attribute type on new" returning
// nothing per spec.md §7 -- here applied symmetrically to duplicate
// registration, since re-registering a name is equally a contract
// violation the caller must notice.
func RegisterType(name string, kind Kind, affectsAnalysis bool, merge MergePolicy, callbacks PointerCallbacks) (Type, bool) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	if _, exists := globalRegistry.names[name]; exists {
		return 0, false
	}
	t := globalRegistry.next
	globalRegistry.next++
	globalRegistry.byID[t] = typeInfo{
		name:        name,
		kind:        kind,
		affectsAnal: affectsAnalysis,
		merge:       merge,
		callbacks:   callbacks,
	}
	globalRegistry.names[name] = t
	return t, true
}

// AffectsAnalysis reports whether an attribute of type t can change the
// itemization of the text it covers (font, language, script-affecting
// attributes), as opposed to a purely cosmetic "extra" attribute such as a
// color.
func AffectsAnalysis(t Type) bool {
	info, ok := infoFor(t)
	return ok && info.affectsAnal
}

// LookupType resolves a registered type by name, built-in or custom.
func LookupType(name string) (Type, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	t, ok := globalRegistry.names[name]
	return t, ok
}

func infoFor(t Type) (typeInfo, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	info, ok := globalRegistry.byID[t]
	return info, ok
}

func mergePolicyFor(t Type) MergePolicy {
	info, ok := infoFor(t)
	if !ok {
		return MergeReplace
	}
	return info.merge
}

func nameFor(t Type) string {
	info, ok := infoFor(t)
	if !ok {
		return ""
	}
	return info.name
}

// builtinTypeInfo seeds the registry with the built-in types declared in
// types.go, using the nicks recovered from original_source/pango/pango-attr.c
// so that Serialize round-trips known attributes with pango's own spelling.
var builtinTypeInfo = map[Type]typeInfo{
	Language:           {name: "language", kind: KindLanguage, affectsAnal: true},
	Family:             {name: "family", kind: KindString, affectsAnal: true},
	Style:              {name: "style", kind: KindInt, affectsAnal: true},
	Weight:             {name: "weight", kind: KindInt, affectsAnal: true},
	Variant:            {name: "variant", kind: KindInt, affectsAnal: true},
	Stretch:            {name: "stretch", kind: KindInt, affectsAnal: true},
	Size:               {name: "size", kind: KindInt, affectsAnal: true},
	FontDesc:           {name: "font-desc", kind: KindFontDesc, affectsAnal: true},
	Foreground:         {name: "foreground", kind: KindColor},
	Background:         {name: "background", kind: KindColor},
	Underline:          {name: "underline", kind: KindInt},
	Strikethrough:      {name: "strikethrough", kind: KindBool},
	Rise:               {name: "rise", kind: KindInt},
	Shape:              {name: "shape", kind: KindPointer, affectsAnal: true},
	Scale:              {name: "scale", kind: KindFloat, affectsAnal: true},
	FallbackEnabled:    {name: "fallback", kind: KindBool, affectsAnal: true},
	LetterSpacing:      {name: "letter-spacing", kind: KindInt},
	Underlinecolor:     {name: "underline-color", kind: KindColor},
	Strikethroughcolor: {name: "strikethrough-color", kind: KindColor},
	AbsoluteSize:       {name: "absolute-size", kind: KindInt, affectsAnal: true},
	Gravity:            {name: "gravity", kind: KindInt, affectsAnal: true},
	GravityHint:        {name: "gravity-hint", kind: KindInt, affectsAnal: true},
	FontFeatures:       {name: "font-features", kind: KindString, affectsAnal: true},
	ForegroundAlpha:    {name: "foreground-alpha", kind: KindInt},
	BackgroundAlpha:    {name: "background-alpha", kind: KindInt},
	AllowBreaks:        {name: "allow-breaks", kind: KindBool, affectsAnal: true},
	Show:               {name: "show", kind: KindInt, affectsAnal: true},
	InsertHyphens:      {name: "insert-hyphens", kind: KindBool, affectsAnal: true},
	Overline:           {name: "overline", kind: KindInt},
	Overlinecolor:      {name: "overline-color", kind: KindColor},
	LineHeight:         {name: "line-height", kind: KindFloat},
	AbsoluteLineHeight: {name: "absolute-line-height", kind: KindInt},
	TextTransform:      {name: "text-transform", kind: KindInt, affectsAnal: true},
	Word:               {name: "word", kind: KindBool},
	Sentence:           {name: "sentence", kind: KindBool},
	BaselineShift:      {name: "baseline-shift", kind: KindInt},
	FontScale:          {name: "font-scale", kind: KindInt, affectsAnal: true},
}
