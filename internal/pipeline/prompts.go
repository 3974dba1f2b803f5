package pipeline

import "fmt"

func summarizePrompt(category, articleText string) string {
	return fmt.Sprintf(`You are an expert crisis event summarizer.

Your task is to analyze the following news article about a %[1]s and extract **as many relevant facts and insights as possible**.

Focus on:
- Where the event occurred
- When it happened
- Who was affected (people, communities, organizations)
- What exactly happened (cause, scale, damage)
- How authorities or officials responded (evacuations, policies, statements)
- Broader context if mentioned (patterns, comparisons, history)

Avoid any personal opinions or vague statements.
Do not add any irrelevant informations thats not related to %[1]s such as advertisements
Present the summary in **7-10 detailed LINES OF PARAGRAPH**, keeping it objective and information-rich. This summary will be used in a later step to generate a high-level overview across multiple articles.
Just give me summary text do not add any heading.
### Article:
%[2]s`, category, articleText)
}

func fillPrompt(category, combined, templateBody string) string {
	return fmt.Sprintf(`You are an expert crisis analysis assistant.

Below is a list of summaries from different news articles, all related to the same type of crisis event: a %[1]s.

Your task is to analyze these summaries and extract the necessary details to fill in the placeholders within the provided template.

The placeholders are enclosed in angle brackets (e.g., <magnitude>, <primary-affected-location>). Each placeholder should be replaced with the most relevant information from the summaries.

### Multiple Summaries:
%[2]s

### Template:
%[3]s

Carefully extract the information and replace each placeholder with the most appropriate details found in the summaries. Ensure accuracy, clarity, and objectivity in the final filled-out template. Preserve all text outside the placeholders verbatim and return only the filled-out template.`, category, combined, templateBody)
}

func titlePrompt(category, text string) string {
	return fmt.Sprintf(`You are an expert news aggregator. Generate a short, catchy, and informative title for a text about a %s.
Below is the text that needs a title.
- Keep it less than 5 words.
- Avoid extra details or filler.

### Text:
%s

Give me a title only.`, category, text)
}

func templatePrompt(category, context string) string {
	return fmt.Sprintf(`You are a professional news reporter. Your task is to generate a generalized summary template for %[1]s, ensuring that it applies to any event of this type.

Each input paragraph describes a past %[1]s event. Identify common key attributes across all examples and structure them into a standardized template.

Instructions:
The template must be fully generalized for %[1]ss—DO NOT insert specific details from the given context.
Use descriptive placeholder tags in this format: <attribute-name>.
DO NOT add extra commentary or change the output structure.
The template must remain neutral and applicable to all %[1]s events.
The template must end with a <unique-extra-info> tag for unique info about a specific %[1]s.

Here are some examples of summaries that were used to create a template for a Hurricane disaster.
Context of Hurricanes:
Hurricane Katrina made landfall on August 29, 2005, as a Category 3 hurricane along the Gulf Coast, primarily affecting Louisiana and Mississippi. It caused catastrophic flooding in New Orleans due to levee failures and had maximum sustained winds of 175 mph. Coastal areas experienced significant storm surge. The aftermath involved widespread displacement and long-term recovery efforts.
Hurricane Maria struck Puerto Rico on September 20, 2017, as a Category 4 hurricane with winds reaching 155 mph. It caused widespread devastation to infrastructure, including power grids and communication systems. The entire island experienced significant damage, and recovery took years. Heavy rainfall led to severe flooding and landslides.
Generated Template:
Hurricane <hurricane-name> was a Category <category> hurricane that affected <primary-affected-location> and caused <primary-effect> on <hurricane-date>. The hurricane had winds up to <max-wind-speed>. Hurricane <hurricane-name> also affected <secondary-affected-area>. <unique-extra-info>.

Here are some examples of summaries that were used to create a template for a Wildfire disaster.
Context of Wildfires:
The Camp Fire in November 2018 in Northern California rapidly spread through dry vegetation, destroying the town of Paradise and causing significant loss of life. High winds and dry conditions fueled the fire, which burned over 153,000 acres and destroyed thousands of structures. The investigation pointed to a power line as the ignition source.
The Australian bushfires of 2019-2020 were unprecedented in scale, burning millions of hectares across multiple states. Prolonged drought and extreme heat created highly flammable conditions. The fires resulted in significant ecological damage, loss of wildlife, and widespread smoke pollution affecting major cities. Multiple ignition sources, including lightning and human activity, were identified.
Generated Template:
Wildfire <wildfire-name> began on <start-date> and burned approximately <acres-burned> acres in <primary-affected-region>, impacting <number-of-structures> structures. The cause of the wildfire is currently <cause-of-fire>. Evacuation orders were issued for <evacuated-areas>. <unique-extra-info>.

Now given the follow context, create a template for %[1]ss like the examples above:
%[2]s

Return ONLY the structured template above without explanations or additional text.`, category, context)
}
