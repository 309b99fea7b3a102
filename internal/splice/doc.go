// Package splice performs in-place text surgery on configuration files that
// mix JSON with non-JSON template syntax.
//
// Target files cannot be parsed and re-serialized: chezmoi template
// directives coexist with the JSON and a round trip would destroy them.
// Instead the package offers exactly two mutation strategies, resolved once
// per target before any content is computed:
//
//   - MarkerBlock: a start/end marker comment pair delimits a
//     generator-owned block. The lines between the markers are replaced,
//     re-indented to the whitespace captured from the start marker's line.
//
//   - StructuralSplice: a minimal hand-rolled scanner locates a key's value
//     inside the JSON-like object and only that byte span is replaced.
//     Depth counts '{' and '}' exclusively, quoted strings are skipped with
//     escape awareness, and value spans cover objects, arrays, strings and
//     bare scalars.
//
// Before scanning, the document is shadowed through jsonc.ToJSON, which
// neutralizes JSONC comments while preserving byte offsets; spans located
// in the shadow are spliced into the original text, so comments and
// template syntax outside the replaced span survive byte-identical.
package splice
