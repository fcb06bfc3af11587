package render

// Prompt bodies for each template. Placeholders use {{name}} and must be
// listed in the template's Required set.

const FeaturePrompt = `You are a senior software engineer helping me plan a new feature for an existing project.

Project: {{project_name}}
Technologies already in use: {{skills}}
Date: {{generated_on}}

Feature request:
{{feature_request}}

Please produce:
1. A short restatement of the feature in your own words, so I can confirm we agree on scope.
2. The files or modules likely to change, and any new ones to add.
3. A step-by-step implementation plan small enough to review one step at a time.
4. Edge cases and failure modes worth testing.
5. Open questions I should answer before starting.

Keep the plan practical and specific to the technologies listed above.`

const PortfolioPrompt = `You are an expert Upwork profile writer. Write a portfolio entry for one of my projects.

Project name: {{project_name}}
Technologies detected: {{skills}}
Project size: {{total_files}} files, of which {{code_files}} are source files
Author: {{author}}
Source: {{github_url}}

Project description (from the README):
{{description}}

Write the portfolio entry with:
- A compelling title (max 70 characters)
- A one-paragraph summary a non-technical client understands
- 3 to 5 bullet points on what I built and the problems it solves
- The list of skills to tag on the entry, using the technologies above
- A closing line inviting the client to get in touch

Write in the first person, confident but not exaggerated. Do not invent features the description does not support.`

const ProposalPrompt = `You are helping a freelance developer write a winning Upwork proposal.

Job posting:
{{job_description}}

My relevant skills: {{skills}}
My name: {{author}}
My work: {{github_url}}

Write a proposal that:
- Opens by addressing the client's specific problem, not by introducing myself
- Explains in 2 or 3 sentences how I would approach the work
- Mentions relevant experience using the skills listed above, only where they fit the job
- Proposes a first milestone with a concrete deliverable
- Ends with one clarifying question about the project

Keep it under 200 words. Plain text, no headings, no emojis.`

const DocsPrompt = `You are a technical writer. Write documentation for the project described below.

Project: {{project_name}}
Location: {{project_path}}
Technologies: {{skills}}
Size: {{total_files}} files ({{code_files}} source files)
Documentation target: {{docs_target}}

Existing README:
{{description}}

Produce a complete markdown document covering:
# Overview - what the project does and who it is for
# Installation - prerequisites and setup steps
# Usage - the main workflows with examples
# Configuration - settings and environment variables
# Deployment - how to ship it
# Troubleshooting - common problems and fixes

Where the README does not give enough detail, mark the gap with <!-- TODO: ... --> instead of guessing.`

const MarketResearchPrompt = `You are a freelance market analyst. Research demand for my skill set on Upwork.

My skills: {{skills}}
Freelancer: {{author}}
Date: {{generated_on}}

Report on:
1. Which of these skills are in highest demand right now, and typical hourly rates for each
2. Project types that combine several of these skills
3. Adjacent skills that would noticeably widen the jobs I can bid on
4. How to position my profile headline and overview against competitors
5. Three concrete portfolio projects that would strengthen my profile

Present the findings as a concise report with a short action list at the end.`
