package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/finsightlabs/finctl/internal/meta"
)

const bashCompletionScript = `# bash completion for finctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_finctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "aq cache hq pq sq completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --local --output -o --sort -s --titles -t --tldr --api"

    case "$cmd" in
    aq)
      local opts="$common"
            ;;
        hq)
      local opts="$common --cached --diff --pick --portfolio -p --refresh -r"
            ;;
        pq)
      local opts="$common"
            ;;
        sq)
      local opts="$common --reverse --target"
            ;;
        cache)
            local opts="--clear --purge"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
  return 0
}

complete -F _finctl finctl
`

const zshCompletionScript = `#compdef finctl

_finctl() {
  local -a cmds
  cmds=(
    'aq:account query'
    'cache:inspect or prune the local snapshot store'
    'hq:holdings query'
    'pq:plan query'
    'sq:score query'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '--local[render timestamps in the configured timezone]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  '--api[FinSight API base URL]:url'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'finctl commands' cmds
    return
  fi

  case $words[2] in
    aq)
      _arguments -C $common
      ;;
    hq)
      _arguments -C \
        $common \
        '--cached[serve only from the local snapshot]' \
        '--diff[drift between snapshot and live data]' \
        '--pick[pick the portfolio interactively]' \
        '(-p --portfolio)'{-p,--portfolio}'[portfolio to query]:portfolio' \
        '(-r --refresh)'{-r,--refresh}'[bypass the snapshot]'
      ;;
    pq)
      _arguments -C $common
      ;;
    sq)
      _arguments -C \
        $common \
        '--reverse[project inputs for a target score]' \
        '--target[target score]:score'
      ;;
    cache)
      _arguments -C \
        '--clear[remove every cache entry]' \
        '--purge[remove entries older than N hours]:hours'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _finctl finctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: finctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "finctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
