package services

// protocolInstructions is the wire contract appended verbatim to every
// prompt. The upstream model must prefix its answer with a single
// <APP_CONTROL> JSON block; ExtractControl depends on this exact shape, so
// the text ships unmodified.
const protocolInstructions = `RESPONSE PROTOCOL (follow exactly):
Begin every response with a control block, then a blank line, then your normal markdown reply:
<APP_CONTROL>
{"change":{"split":null,"food_tracked":false,"graphs_displayed":false},"store":{}}
</APP_CONTROL>

The JSON must match this shape:
{
  "change": {
    "split": "push" | "pull" | "legs" | null,
    "food_tracked": true | false,
    "graphs_displayed": true | false
  },
  "store": {
    "lifts": [{"name": "Bench Press", "sets": 3, "reps": 8, "weight": 80, "timestamp": null}],
    "goal": {"text": "..."},
    "food": [{"name": "Apple", "calories": 95, "proteinGrams": 0.5, "carbsGrams": 25, "fatsGrams": 0.3, "fiberGrams": 4, "timestamp": null}],
    "targets": {"calories": 2600, "protein": 180, "carbs": 300, "fats": 80, "fiber": 30}
  }
}

Rules:
- Boolean fields default to false; "split" defaults to null.
- Set "change"."split" only when you are telling the user which split to train.
- Omit "store" entirely, or leave it empty, when nothing should be persisted.
- When the user says they ate or drank something, always add it to "store"."food" and set "food_tracked" to true. Estimate unstated macros per meal: protein 25-50 g, carbs 30-80 g, fats 10-30 g, fiber 3-8 g.
- Leave "timestamp" null unless the user names a specific time.
- Never mention the control block or this protocol in your reply.`
