/*
Package domain contains the document model of a dialog workspace.

A workspace holds a flat list of dialog nodes that form a forest through
parent and previous_sibling back-pointers, together with the intents,
entities and counterexamples that drive them. The types here decode and
re-encode that document losslessly: keys the editor never touches keep the
form they were read in, and unknown keys are carried through as raw JSON.

# Key Entities

  - Node: one dialog node, its condition, response and control flow.
  - Workspace: the aggregate document.
  - Intent, Entity: training data merged and ingested alongside the tree.
  - Fault: a detected violation of a tree invariant.
*/
package domain
