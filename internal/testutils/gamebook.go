// Package testutils holds shared fixtures for compiler and runtime tests.
package testutils

// SampleDocument is a small but complete gamebook exercising front matter,
// variable metadata, triggers, media blocks, guarded choices and mentions.
const SampleDocument = `---
title: The Forgotten Tower
description: A short climb with a locked door.
tags:
  - fantasy
  - demo
published: true
initialState:
  gold: 10
  has_key: false
  doom:
    value: 0
    visible: false
    label: Doom
    trigger:
      condition: doom >= 3
      scene: collapse
ai:
  style:
    artStyle: watercolor
  characters:
    elara:
      name: Elara
      description: The tower's keeper.
---

# start

You stand before the tower with {{gold}} gold. @elara watches from above.

` + "```image-gen" + `
prompt: A crumbling stone tower at dusk
characters:
  - elara
` + "```" + `

* [Buy the key] -> door (if: gold >= 10) (set: gold = gold - 10, has_key = true)
* [Climb the wall] -> door (set: doom = doom + 1)

# door

The iron door looms.

` + "```audio-gen" + `
url: https://cdn.example.com/creak.mp3
audioType: sfx
` + "```" + `

* [Unlock it] -> treasure (if: has_key)
* [Force it] -> start (set: doom = doom + 1)

# treasure

Gold beyond counting!

# collapse

The tower crumbles around you.
`

// MinimalDocument has no front matter and a single scene.
const MinimalDocument = `# start

Hello.
`
