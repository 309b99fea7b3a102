package testutil

// Canned documents shared by the end-to-end specs.

// DefaultData is a small but representative source document: shared bash
// lists, a Claude section using the sentinel, and an opencode default.
const DefaultData = `bash:
  allow:
    - git status
    - git log
  deny:
    - rm -rf
claude:
  allow:
    - Read
    - __BASH__
  deny:
    - WebFetch
opencode:
  bash:
    default: ask
`

// ClaudeTemplate is a chezmoi-flavored settings template carrying the
// generated block markers and a template directive the generator must
// leave alone.
const ClaudeTemplate = `{{- $model := .claudeModel | default "sonnet" }}
{
  "model": {{ $model | quote }},
  "permissions": {
    {{/* PERMISSIONS:START */}}
    "allow": []
    {{/* PERMISSIONS:END */}}
  }
}
`

// OpencodeConfig is an opencode config with a comment and an unrelated
// key, exercising the comment-tolerant structural splice.
const OpencodeConfig = `{
  // managed by chezmoi
  "$schema": "https://opencode.ai/config.json",
  "autoupdate": false,
  "permission": {
    "bash": {}
  }
}
`
