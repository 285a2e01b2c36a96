/*
Package domain contains the core domain models for the Inkforge gamebook engine.

It defines the entities produced by the DSL compiler and consumed by the
runtime evaluator: the Game (authoring representation), Scenes and their
ordered SceneNodes, the flat RuntimeState mutated during play, and the
PlayableGame projection shipped to client runtimes. This package is kept pure
and free of I/O or persistence concerns, following Hexagonal Architecture
principles.

# Key Entities

  - Game: The full authoring representation (metadata, initial state, AI
    config, insertion-ordered scene map).
  - Scene / SceneNode: A scene is an ordered sequence of nodes; node order is
    render/execution order. SceneNode is a tagged union over text, media,
    choice and minigame variants.
  - VariableValue: Either a raw scalar or a meta record with display hints
    and an optional trigger.
  - RuntimeState: The flat scalar map the evaluator operates on.
  - State: The runtime snapshot of a play session (current scene, variables,
    history).
*/
package domain
