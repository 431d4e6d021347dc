package controller

import m "github.com/mouse-blink/docent/internal/model"

// instructions holds the guidance shown above the workspace for each stage.
var instructions = map[m.Stage]string{
	m.StageBrowsing: `## Find a function to document

Open **main.py** or one of the scripts from the project directory. Move the
cursor onto a line that starts with ` + "`def`" + ` and press **enter**, or mark
the first and last line of a function with **v**.`,

	m.StageFunctionSelected: `## Add documentation?

Confirm to start writing a docstring for the selected function.`,

	m.StageDocstringEditing: `## Write a docstring

A good docstring answers four questions:

1. What does the function do?
2. What are its inputs?
3. What does it return?
4. How is it used?

Type between the quotes and press **ctrl+s** to submit.`,

	m.StageDocstringValidation: `## Check your docstring

Answer each question honestly with **y**, **n** or **u**. If anything is
missing, **r** takes you back to the editor. When every answer is *yes* you can
continue.`,

	m.StageLineSelection: `## Choose lines to comment

Inline comments explain *why* a line exists. Flag the lines that would puzzle a
new reader with **space**, then press **enter**.`,

	m.StageInlineCommenting: `## Write inline comments

Rest on a flagged line to see suggestions. Pick one with its number or press
**w** to write your own. Every flagged line needs a comment before you can
**c**ompare.`,

	m.StageSolutionComparison: `## Compare solutions

Switch between your solution and the example with **tab**. Press **y** to copy
the one shown, or **r** to start again.`,
}

func stageInstructions(stage m.Stage) string {
	return instructions[stage]
}
