package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
	"github.com/shantanugsharp/chatbot-be/internal/core/services"
)

const (
	goodbye    = "Thank you for using MIRA! Visit hooprsmash.com for more music!"
	freshStart = "Let's start fresh! What can I help you with?"
	blankHint  = "Please describe what kind of music you need!\nExample: 'I need upbeat music for a fitness brand reel'"
)

func newChatCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive session",
		Long: `Starts an interactive session. Type quit, exit, bye or q to leave,
reset to clear the conversation and stats to see catalog statistics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(a.Engine.Name()+" is ready!"))
			fmt.Fprintln(out, mutedStyle.Render(a.Engine.Stats().String()))
			return repl(cmd, a.Engine, cmd.InOrStdin(), out)
		},
	}
}

// repl reads one utterance per line until EOF or an exit word.
func repl(cmd *cobra.Command, engine *services.Engine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n"+userStyle.Render("You:")+" ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n"+goodbye)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "quit", "exit", "bye", "q":
			fmt.Fprintln(out, goodbye)
			return nil
		case "reset":
			engine.ResetConversation()
			fmt.Fprintln(out, botStyle.Render("MIRA:")+" "+freshStart)
			continue
		case "stats":
			fmt.Fprintln(out, engine.Stats().String())
			continue
		case "":
			fmt.Fprintln(out, mutedStyle.Render(blankHint))
			continue
		}

		reply := engine.Respond(cmd.Context(), line)
		printReply(out, reply)
	}
}

func printReply(out io.Writer, reply domain.Reply) {
	label := botStyle.Render("MIRA:")
	if !reply.OK() {
		label = errorStyle.Render("MIRA:")
	}
	fmt.Fprintln(out, "\n"+label+" "+reply.Text)
}

func newAskCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.TrimSpace(strings.Join(args, " "))
			if message == "" {
				return fmt.Errorf("message must not be blank")
			}
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			reply := a.Engine.Respond(cmd.Context(), message)
			fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			if reply.Failure != nil {
				return reply.Failure
			}
			return nil
		},
	}
}
