package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/ui"
)

var questionText = map[int]string{
	1: "I feel emotionally drained from my work",
	2: "I feel used up at the end of the workday",
	3: "I feel tired when I get up to face another day",
	4: "I have become less interested in my work",
	5: "I have become less enthusiastic about my work",
	6: "I doubt the significance of my work",
	7: "I can effectively solve problems that arise",
	8: "I feel I'm making an effective contribution",
	9: "I feel good about accomplishing things",
}

var answerOptions = []string{
	"Never",
	"A few times a year",
	"Once a month",
	"A few times a month",
	"Once a week",
	"A few times a week",
	"Every day",
}

var burnoutMessage = map[progress.BurnoutLevel]string{
	progress.BurnoutMild:     "You're on the right track: prevention mode.",
	progress.BurnoutModerate: "Pay attention to yourself. Time to slow down.",
	progress.BurnoutSevere:   "You need support. We'll go step by step.",
}

func newAssessCmd() *cobra.Command {
	var (
		answers []string
		list    bool
	)

	cmd := &cobra.Command{
		Use:   "assess --answer <question>=<0-6> ...",
		Short: "Score the burnout questionnaire and set your pace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list || len(answers) == 0 {
				printQuestionnaire(cmd)
				return nil
			}

			parsed, err := parseAnswers(answers)
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				res, err := a.svc.RecordAssessment(ctx, parsed)
				if err != nil {
					return err
				}

				fmt.Fprintln(out, ui.Heading(ui.IconSparkle, res.Burnout.Title()))
				fmt.Fprintln(out, ui.Muted.Render(burnoutMessage[res.Burnout]))
				fmt.Fprintln(out, ui.LabelValue("Score", fmt.Sprintf("%d (exhaustion %d, cynicism %d, efficacy %d)",
					res.Total, res.Score.Exhaustion, res.Score.Cynicism, res.Score.Efficacy)))
				fmt.Fprintln(out, ui.LabelValue("Pace", fmt.Sprintf("%s, %d tasks a day from tomorrow",
					capitalize(string(res.Pace)), res.Pace.DailyTaskCount())))
				if res.RewardGranted > 0 {
					fmt.Fprintln(out, ui.LabelValue("Check-in reward", ui.Stardust(res.RewardGranted)))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "answer as question=index, e.g. 1=4 (repeatable)")
	cmd.Flags().BoolVar(&list, "list", false, "print the questions and answer scale")
	return cmd
}

// parseAnswers turns "q=a" pairs into question id to answer index.
func parseAnswers(raw []string) (map[int]int, error) {
	out := make(map[int]int, len(raw))
	for _, pair := range raw {
		q, a, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q: expected question=index", pair)
		}
		qid, err := strconv.Atoi(strings.TrimSpace(q))
		if err != nil {
			return nil, fmt.Errorf("answer %q: question must be a number", pair)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("answer %q: index must be a number", pair)
		}
		out[qid] = idx
	}
	return out, nil
}

func printQuestionnaire(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "How have you been feeling?"))
	for _, q := range progress.Questions {
		fmt.Fprintf(out, "%s %s\n", ui.Key.Render(strconv.Itoa(q.ID)+"."), questionText[q.ID])
	}
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, ui.H2.Render("Answer scale"))
	for i, a := range answerOptions {
		fmt.Fprintf(out, "%s %s\n", ui.Key.Render(strconv.Itoa(i)), a)
	}
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, ui.Muted.Render("Example: ember assess -a 1=4 -a 2=3 -a 3=5 ... -a 9=2"))
}
