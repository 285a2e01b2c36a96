/*
Package inkforge compiles and plays gamebooks written in a Markdown-based DSL.

A gamebook document is YAML front matter (title, tags, AI config, initial
state) followed by scenes introduced by "# id" headers. Scenes contain
markdown text, fenced generation blocks (image-gen, audio-gen, video-gen,
minigame-gen) and choice lines:

	* [Pay the ferryman] -> crossing (if: gold >= 10) (set: gold = gold - 10)

The package exposes two symmetric halves:

  - Compiler: Parse turns a document into a domain.Game scene graph;
    Stringify is its structural inverse. Validate is a separate strict pass
    for reference integrity (the parser itself is permissive).
  - Runtime: EvaluateCondition, ExecuteSet and InterpolateVariables are the
    pure evaluator primitives; Engine drives whole play sessions on top of
    them, producing a new immutable State per transition.

Session persistence and locking live in pkg/session with pluggable stores
(pkg/adapters/memory, pkg/adapters/redis). ToPlayable projects a Game into
the reduced shape shipped to client runtimes.
*/
package inkforge
