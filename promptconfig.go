package papergen

// patternSpec carries the format constraints and a reference example for
// one blueprint pattern, injected into the generator's system prompt.
type patternSpec struct {
	Description string
	Example     string
}

var patternSpecs = map[string]patternSpec{
	PatternSingleCorrect: {
		Description: `Options where ONLY ONE choice is correct. Options must be concise yet deliberately tough and closely related to the correct answer. Avoid the most obvious or famous examples; target obscure but relevant details.`,
		Example: `Which one of the following best describes the term 'Green Hydrogen'?
(a) Hydrogen produced from the electrolysis of water using renewable energy sources.
(b) Hydrogen produced from fossil fuels, with the associated carbon emissions captured and stored.
(c) Hydrogen produced as a by-product of industrial chemical processes.
(d) Hydrogen that is naturally occurring in geological formations.
Answer: A`,
	},
	PatternSingleIncorrect: {
		Description: `Options where ONLY ONE choice is incorrect. Same depth and option-closeness requirements as the single-correct pattern.`,
		Example: `Which one of the following was NOT a feature of the Government of India Act of 1919?
(a) It introduced 'dyarchy' in the executive government of the provinces.
(b) It introduced separate communal electorates for Sikhs, Indian Christians, and Anglo-Indians.
(c) It provided for the establishment of a Public Service Commission.
(d) It provided for the establishment of an All-India Federation.
Answer: D`,
	},
	PatternMS2Correct: {
		Description: `EXACTLY 2 small statements. MANDATORY STRUCTURE: open with an introductory phrase ("With reference to...", "Consider the following statements...") and close with "Which of the statements given above is/are correct?"`,
		Example: `Consider the following statements about Raja Ram Mohan Roy:
I. He possessed great love and respect for the traditional philosophical systems of the East.
II. He desired his countrymen to accept the rational and scientific approach.
Which of the statements given above is/are correct?
(a) I only (b) II only (c) Both I and II (d) Neither I nor II
Answer: C`,
	},
	PatternMS2Incorrect: {
		Description: `EXACTLY 2 small statements. MANDATORY STRUCTURE: introductory opening plus the closing question "Which of the statements given above is/are NOT correct?" or "Which of the statements given above are incorrect?"`,
		Example: `Consider the following statements regarding 'Aerosols':
I. Aerosols are tiny solid or liquid particles suspended in the atmosphere.
II. Aerosols always have a warming effect on the climate.
Which of the statements given above is/are NOT correct?
(a) I only (b) II only (c) Both I and II (d) Neither I nor II
Answer: B`,
	},
	PatternMS3Correct: {
		Description: `EXACTLY 3 statements numbered 1, 2, 3. MANDATORY STRUCTURE: introductory opening plus the closing question "Which of the statements given above is/are correct?" after statement 3.`,
		Example: `With reference to the office of the President of India, consider the following statements:
1. The President is elected by an electoral college consisting of all members of Parliament.
2. The election is held by proportional representation by means of the single transferable vote.
3. The President holds office for a term of five years and is eligible for re-election.
Which of the statements given above is/are correct?
(a) 1 and 2 only (b) 2 and 3 only (c) 1 and 3 only (d) 1, 2 and 3
Answer: B`,
	},
	PatternMS3Incorrect: {
		Description: `EXACTLY 3 statements numbered 1, 2, 3. MANDATORY STRUCTURE: introductory opening plus the closing question "Which of the statements given above is/are NOT correct?"`,
		Example: `Consider the following statements regarding the Black Cotton Soils of India:
1. They are formed from the weathering of basaltic rocks.
2. They are rich in phosphoric acid, nitrogen, and organic matter.
3. They possess a high moisture-retention capacity.
Which of the statements given above is/are NOT correct?
(a) 1 and 3 only (b) 2 only (c) 1 and 2 only (d) 3 only
Answer: B`,
	},
	PatternMS4Correct: {
		Description: `EXACTLY 4 statements numbered 1, 2, 3, 4. Statement 4 MUST be present and complete; never stop at statement 3. The closing question "Which of the statements given above is/are correct?" MUST appear after statement 4. The question is INVALID if statement 4 or the closing question is missing.`,
		Example: `With reference to the Indian Constitution, consider the following statements:
1. The Constitution provides for a parliamentary form of government.
2. The President of India is directly elected by the people.
3. The Vice President is the ex-officio Chairman of the Rajya Sabha.
4. The Supreme Court has the power of judicial review.
Which of the statements given above is/are correct?
(a) 1, 2 and 3 only (b) 1, 3 and 4 only (c) 2, 3 and 4 only (d) 1, 2, 3 and 4
Answer: B`,
	},
	PatternMS4Incorrect: {
		Description: `EXACTLY 4 statements numbered 1, 2, 3, 4, closing with "Which of the statements given above is/are NOT correct?" after statement 4. The question is INVALID if statement 4 or the closing question is missing.`,
		Example: `Consider the following statements regarding India's biodiversity:
1. India is one of the 17 mega-diverse countries in the world.
2. The Western Ghats and Eastern Himalayas are recognized as biodiversity hotspots.
3. Project Tiger was launched in 1973.
4. India has more than 50,000 plant species, making it the most plant-diverse country.
Which of the statements given above is/are NOT correct?
(a) 1 and 2 only (b) 2 and 4 only (c) 3 and 4 only (d) 4 only
Answer: D`,
	},
	PatternHowManyStatement: {
		Description: `Multiple small statements where elimination is not possible. MANDATORY STRUCTURE: introductory opening plus the closing question "How many of the statements given above are correct?" Options count the correct statements (Only one / Only two / Only three / All four).`,
		Example: `Consider the following regarding organisms:
1. Agaricus is a type of fungus.
2. Nostoc is a blue-green alga.
3. Spirogyra is a protist.
4. Yeast is used in the production of bread and beer.
How many of the statements given above are correct?
(a) Only one (b) Only two (c) Only three (d) All four
Answer: C`,
	},
	PatternHowManyPairs: {
		Description: `Multiple pairs testing associative knowledge. Open with "Consider the following pairs:" and close with "How many pairs given above are correctly matched?"`,
		Example: `Consider the following pairs:
   Historical Site : Well-known for
1. Bhaja          : Buddhist Cave Shrine
2. Sittanavasal   : Jain Mural Paintings
3. Ellora         : Shaivite, Buddhist, and Jain Caves
How many pairs given above are correctly matched?
(a) Only one pair (b) Only two pairs (c) All three pairs (d) None of the pairs
Answer: B`,
	},
	PatternHowManySets: {
		Description: `Multiple triplets testing associative knowledge across three aspects. Open with "Consider the following:" and close with "How many of the sets given above are correctly matched in all three aspects?"`,
		Example: `Consider the following:
   Tribe   : State          : Primary Festival
1. Konyak  : Nagaland       : Aoleang
2. Tharu   : Uttarakhand    : Diwali (as a day of mourning)
3. Bhil    : Madhya Pradesh : Bhagoria
How many of the sets given above are correctly matched in all three aspects?
(a) Only one set (b) Only two sets (c) All three sets (d) None of the sets
Answer: A`,
	},
	PatternAssertionReason2: {
		Description: `Two statements (Statement-I and Statement-II) closing with "Which one of the following is correct in respect of the above statements?" Options discuss whether both are correct and whether Statement-II explains Statement-I. Do NOT frame the question so option (a) is habitually the answer.`,
		Example: `Consider the following statements:
Statement-I: India, despite having large uranium deposits, depends on coal for most of its electricity production.
Statement-II: Uranium, enriched to the extent of at least 60%, is required for the production of electricity.
Which one of the following is correct in respect of the above statements?
(a) Both Statement-I and Statement-II are correct, and Statement-II is the correct explanation for Statement-I.
(b) Both Statement-I and Statement-II are correct, but Statement-II is not the correct explanation for Statement-I.
(c) Statement-I is correct, but Statement-II is incorrect.
(d) Statement-I is incorrect, but Statement-II is correct.
Answer: C`,
	},
	PatternAssertionReason3: {
		Description: `THREE statements required: Statement-I (main assertion), Statement-II and Statement-III (two potential explanations). ALL THREE must be present; never omit Statement-III. Close with "Which one of the following is correct in respect of the above statements?" and use the 3-statement option format (whether II and III are correct and which of them explains I), NOT the 2-statement format. The question is INVALID without Statement-III.`,
		Example: `Consider the following statements:
Statement-I: The Montagu-Chelmsford Reforms (1919) failed to satisfy the aspirations of Indian nationalists.
Statement-II: The Reforms introduced the system of 'Dyarchy' in the provinces.
Statement-III: The Reforms made no provision for a responsible government at the Centre.
Which one of the following is correct in respect of the above statements?
(a) Both Statement II and Statement III are correct and both of them explain Statement I.
(b) Both Statement II and Statement III are correct but only one of them explains Statement I.
(c) Only one of the Statements II and III is correct and that explains Statement I.
(d) Neither Statement II nor Statement III is correct.
Answer: A`,
	},
	PatternChronological: {
		Description: `Multiple terms whose chronological order is tested; options are dash-separated sequences. FORBIDDEN SEQUENCES: the correct answer must never be "1-2-3-4" or "4-3-2-1". All four options must be distinct permutations.`,
		Example: `Arrange the following events of the Indian National Movement in chronological order (earliest first):
1. Quit India Movement
2. Gandhi-Irwin Pact
3. August Offer
4. Poona Pact
Select the correct answer using the code given below:
(a) 4 - 2 - 3 - 1 (b) 2 - 4 - 3 - 1 (c) 4 - 2 - 1 - 3 (d) 2 - 4 - 1 - 3
Answer: C`,
	},
	PatternGeographical: {
		Description: `Multiple terms whose geographical sequence is tested (e.g. north to south). FORBIDDEN SEQUENCES: the correct answer must never be "1-2-3-4" or "4-3-2-1". All four options must be distinct permutations.`,
		Example: `Consider the following cities. What is the correct sequence of their location from North to South?
1. Hyderabad
2. Nagpur
3. Bhopal
4. Chennai
Select the correct answer using the code given below:
(a) 3 - 2 - 1 - 4 (b) 2 - 3 - 1 - 4 (c) 3 - 1 - 2 - 4 (d) 2 - 1 - 3 - 4
Answer: C`,
	},
}

var cognitiveSpecs = map[string]string{
	"Recall/Recognition":         "Tests pure factual, definitional, or date-based memory of specific, isolated pieces of information.",
	"Comprehension/Conceptual":   "Tests understanding of mechanisms, core concepts, or fundamental meanings; requires linking cause and effect.",
	"Application/Analysis":       "Tests applying theoretical knowledge to a scenario or analyzing multiple statements for correctness via elimination.",
	"Higher Reasoning/Synthesis": "Tests multi-domain, multi-step reasoning or synthesis of complex concepts across subjects.",
}

var difficultySpecs = map[string]string{
	"Easy":      "Straightforward questions testing basic concepts or facts.",
	"Moderate":  "Questions requiring connection of multiple concepts or elimination of close distractors.",
	"Difficult": "Questions testing obscure facts, complex inter-disciplinary linkages, or very subtle distinctions.",
}
