package stages

import (
	"fmt"
	"strings"
)

const fence = "```"

func identifyPrompt(project, codeContext, listing string, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nFor the project `%s`:\n\nCodebase Context:\n%s\n", project, codeContext)
	fmt.Fprintf(&b, `Analyze the codebase context.
Identify the top 5-%d core most important abstractions to help those new to the codebase.

For each abstraction, provide:
1. A concise `+"`name`"+`.
2. A beginner-friendly `+"`description`"+` explaining what it is with a simple analogy, in around 100 words.
3. A list of relevant `+"`file_indices`"+` (integers) using the format `+"`idx # path/comment`"+`.

List of file indices and paths present in the context:
%s

Format the output as a YAML list of dictionaries:

`, limit, listing)
	b.WriteString(fence + "yaml\n")
	fmt.Fprintf(&b, `- name: |
    Query Processing
  description: |
    Explains what the abstraction does.
    It's like a central dispatcher routing requests.
  file_indices:
    - 0 # path/to/file1.py
    - 3 # path/to/related.py
- name: |
    Query Optimization
  description: |
    Another core concept, similar to a blueprint for objects.
  file_indices:
    - 5 # path/to/another.js
# ... up to %d abstractions
`, limit)
	b.WriteString(fence + "\n")
	return b.String()
}

func analyzePrompt(project, listing, codeContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nBased on the following abstractions and relevant code snippets from the project `%s`:\n\n", project)
	fmt.Fprintf(&b, "List of Abstraction Indices and Names:\n%s\n\n", listing)
	fmt.Fprintf(&b, "Context (Abstractions, Descriptions, Code):\n%s\n\n", codeContext)
	b.WriteString(`Please provide:
1. A high-level ` + "`summary`" + ` of the project's main purpose and functionality in a few beginner-friendly sentences. Use markdown formatting with **bold** and *italic* text to highlight important concepts.
2. A list (` + "`relationships`" + `) describing the key interactions between these abstractions. For each relationship, specify:
   - ` + "`from_abstraction`" + `: Index of the source abstraction (e.g., ` + "`0 # AbstractionName1`" + `)
   - ` + "`to_abstraction`" + `: Index of the target abstraction (e.g., ` + "`1 # AbstractionName2`" + `)
   - ` + "`label`" + `: A brief label for the interaction **in just a few words** (e.g., "Manages", "Inherits", "Uses").
   Ideally the relationship should be backed by one abstraction calling or passing parameters to another.
   Simplify the relationship and exclude those non-important ones.

IMPORTANT: Make sure EVERY abstraction is involved in at least ONE relationship (either as source or target). Each abstraction index must appear at least once across all relationships.

Format the output as YAML:

` + fence + `yaml
summary: |
  A brief, simple explanation of the project.
  Can span multiple lines with **bold** and *italic* for emphasis.
relationships:
  - from_abstraction: 0 # AbstractionName1
    to_abstraction: 1 # AbstractionName2
    label: "Manages"
  - from_abstraction: 2 # AbstractionName3
    to_abstraction: 0 # AbstractionName1
    label: "Provides config"
  # ... other relationships
` + fence + `

Now, provide the YAML output:
`)
	return b.String()
}

func orderPrompt(project, listing, relContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nGiven the following project abstractions and their relationships for the project %s %s %s:\n\n", fence, project, fence)
	fmt.Fprintf(&b, "Abstractions (Index # Name):\n%s\n\n", listing)
	fmt.Fprintf(&b, "Context about relationships and project summary:\n%s\n\n", relContext)
	fmt.Fprintf(&b, "If you are going to make a tutorial for %s %s %s, what is the best order to explain these abstractions, from first to last?\n", fence, project, fence)
	b.WriteString(`Ideally, first explain those that are the most important or foundational, perhaps user-facing concepts or entry points. Then move to more detailed, lower-level implementation details or supporting concepts.

Output the ordered list of abstraction indices, including the name in a comment for clarity. Use the format ` + "`idx # AbstractionName`" + `.

` + fence + `yaml
- 2 # FoundationalConcept
- 0 # CoreClassA
- 1 # CoreClassB (uses CoreClassA)
- ...
` + fence + "\n")
	return b.String()
}

// writeRequest carries everything one chapter prompt needs.
type writeRequest struct {
	project     string
	number      int
	name        string
	description string
	toc         string
	previous    string
	snippets    string
	prev        string // markdown link to the previous chapter, "" for the first
	next        string // markdown link to the next chapter, "" for the last
}

func writePrompt(r writeRequest) string {
	previous := r.previous
	if previous == "" {
		previous = "This is the first chapter."
	}
	snippets := r.snippets
	if snippets == "" {
		snippets = "No specific code snippets provided for this abstraction."
	}
	transition := "- If this is not the first chapter, begin with a brief transition from the previous chapter, referencing it with a proper Markdown link using its name."
	if r.prev != "" {
		transition = fmt.Sprintf("- Begin with a brief transition from the previous chapter, referencing it with a proper Markdown link: %s.", r.prev)
	}
	closing := "Do not mention any next chapter since this is the final chapter."
	if r.next != "" {
		closing = fmt.Sprintf("Provide a transition to the next chapter using a proper Markdown link: %s.", r.next)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nWrite a very beginner-friendly tutorial chapter (in Markdown format) for the project `%s` about the concept: %q. This is Chapter %d.\n\n", r.project, r.name, r.number)
	fmt.Fprintf(&b, "  Concept Details:\n  - Name: %s\n  - Description:\n  %s\n\n", r.name, r.description)
	fmt.Fprintf(&b, "  Complete Tutorial Structure:\n  %s\n\n", r.toc)
	fmt.Fprintf(&b, "  Context from previous chapters:\n  %s\n\n", previous)
	fmt.Fprintf(&b, "  Relevant Code Snippets (Code itself remains unchanged):\n  %s\n\n", snippets)
	b.WriteString("  Instructions for the chapter:\n")
	fmt.Fprintf(&b, "  - Start with a clear heading (e.g., `# Chapter %d: %s`). Use the provided concept name.\n\n", r.number, r.name)
	fmt.Fprintf(&b, "  %s\n\n", transition)
	b.WriteString(`  - Begin with a high-level motivation explaining what problem this abstraction solves. Start with a central use case as a concrete example. The whole chapter should guide the reader to understand how to solve this use case. Make it very minimal and friendly to beginners.

  - If the abstraction is complex, break it down into key concepts. Explain each concept one-by-one in a very beginner-friendly way.

  - Explain how to use this abstraction to solve the use case. Give example inputs and outputs for code snippets (if the output isn't values, describe at a high level what will happen).

  - Each code block should be BELOW 10 lines! If longer code blocks are needed, break them down into smaller pieces and walk through them one-by-one. Aggressively simplify the code to make it minimal. Use comments to skip non-important implementation details. Each code block should have a beginner friendly explanation right after it.

  - Describe the internal implementation to help understand what's under the hood. First provide a non-code or code-light walkthrough on what happens step-by-step when the abstraction is called. It's recommended to use a simple sequenceDiagram with a dummy example - keep it minimal with at most 5 participants to ensure clarity. If participant name has space, use: ` + "`participant QP as Query Processing`" + `.

  - Then dive deeper into code for the internal implementation with references to files. Provide example code blocks, but make them similarly simple and beginner-friendly. Explain.

  - IMPORTANT: When you need to refer to other core abstractions covered in other chapters, ALWAYS use proper Markdown links like this: [Chapter Title](filename.md). Use the Complete Tutorial Structure above to find the correct filename and the chapter title.

  - Use mermaid diagrams to illustrate complex concepts (` + "`mermaid`" + ` format).

  - Heavily use analogies and examples throughout to help beginners understand.

`)
	fmt.Fprintf(&b, "  - End the chapter with a brief conclusion that summarizes what was learned. %s\n\n", closing)
	b.WriteString(`  - Ensure the tone is welcoming and easy for a newcomer to understand.

  - Output *only* the Markdown content for this chapter.

  Now, directly provide a super beginner-friendly Markdown output (DON'T need ` + "`markdown`" + ` tags):
  `)
	return b.String()
}
