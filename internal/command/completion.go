// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/meta"
)

const bashCompletionScript = `# bash completion for rcbeam
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_rcbeam()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "check diff resolve schema show watch completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --padding --sort -s --titles -t --tldr"

    case "$cmd" in
        show)
            local opts="$common --format --schema"
            ;;
        watch)
            local opts="$common --format"
            ;;
        schema)
            local opts="$common"
            ;;
        check)
            local opts="--format --quiet -q --tldr"
            ;;
        resolve)
            local opts="--format --out --to --tldr"
            ;;
        diff)
            local opts="--color -c --format --ignore --tldr"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "auto toml yaml json hcl" -- "$cur") )
            return 0
            ;;
        --to)
            COMPREPLY=( $(compgen -W "toml json yaml" -- "$cur") )
            return 0
            ;;
        --out)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Configs are files or directories of them.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _rcbeam rcbeam
`

const zshCompletionScript = `#compdef rcbeam

_rcbeam() {
  local -a cmds
  cmds=(
    'check:validate beam configs'
    'diff:compare two resolved beam configs'
    'resolve:write the fully resolved config document'
    'schema:describe the config document keys'
    'show:show resolved beam configs'
    'watch:show beam configs again whenever they change'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[color text output]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[spaces between columns]:padding'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  local format='--format[input format]:format:(auto toml yaml json hcl)'

  if (( CURRENT == 2 )); then
    _describe -t commands 'rcbeam commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    show)
      _arguments -C \
        $common \
        $format \
        '--schema[list attributes]' \
        '*:config:_files'
      ;;
    watch)
      _arguments -C \
        $common \
        $format \
        '*:config:_files'
      ;;
    schema)
      _arguments -C $common
      ;;
    check)
      _arguments -C \
        $format \
        '(-q --quiet)'{-q,--quiet}'[only report failures]' \
        '--tldr[show tldr page]' \
        '*:config:_files'
      ;;
    resolve)
      _arguments -C \
        $format \
        '--out[output file]:file:_files' \
        '--to[document format]:to:(toml json yaml)' \
        '--tldr[show tldr page]' \
        ':config:_files'
      ;;
    diff)
      _arguments -C \
        $format \
        '(-c --color)'{-c,--color}'[color the diff]' \
        '--ignore[keys to ignore]:keys' \
        '--tldr[show tldr page]' \
        '*:config:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:config:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _rcbeam rcbeam
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}

	w := Writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			return fmt.Errorf("usage: rcbeam completion [bash|zsh]")
		}
	default:
		return fmt.Errorf("unsupported shell %q: usage: rcbeam completion [bash|zsh]", shell)
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "rcbeam completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
