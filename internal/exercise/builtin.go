package exercise

import "github.com/2beens/posecoach/internal/pose"

// Built-in exercise ids.
const (
	IDPushup     = "pushup"
	IDBicepCurl  = "bicep_curl"
	IDSquat      = "squat"
	IDLunge      = "lunge"
	IDPlank      = "plank"
	IDBurpee     = "burpee"
	IDDeadlift   = "deadlift"
	DefaultMET   = 5.0
	missingAngle = 180.0
)

var (
	shoulderElbowWrist = pose.Triplet{pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist}
	elbowShoulderHip   = pose.Triplet{pose.LeftElbow, pose.LeftShoulder, pose.LeftHip}
	shoulderHipKnee    = pose.Triplet{pose.LeftShoulder, pose.LeftHip, pose.LeftKnee}
	hipKneeAnkle       = pose.Triplet{pose.LeftHip, pose.LeftKnee, pose.LeftAnkle}
	rightHipKneeAnkle  = pose.Triplet{pose.RightHip, pose.RightKnee, pose.RightAnkle}
)

type builtin struct {
	exercise Exercise
	opts     []RegisterOption
}

func kneeDepthBands(prefix string) []Band {
	return []Band{
		Below(70, prefix+" is bent too deep. Go down only to about 90 degrees."),
		Inside(110, 160, "Go deeper. Lower until your thighs are parallel to the floor."),
		Within(80, 100, "Great depth!"),
	}
}

func builtins() []builtin {
	return []builtin{
		{
			exercise: Exercise{
				ID:            IDPushup,
				Name:          "Push-up",
				Description:   "A basic exercise for the chest, shoulders and triceps.",
				Category:      CategoryUpper,
				Difficulty:    DifficultyBeginner,
				MET:           8.0,
				TargetMuscles: []string{"chest", "shoulders", "triceps"},
				Angles: []AngleSpec{
					{Joint: "elbow", Points: shoulderElbowWrist, MinAngle: 50, MaxAngle: 170, Feedback: "Bend your elbows deeper"},
					{Joint: "shoulder", Points: elbowShoulderHip, MinAngle: 70, MaxAngle: 110, Feedback: "Keep your arms closer to your torso"},
					{Joint: "hip", Points: shoulderHipKnee, MinAngle: 165, MaxAngle: 195, Feedback: "Keep your body in a straight line"},
				},
				KeyPoints: []string{
					"Hands slightly wider than shoulder width",
					"Keep a straight line from head to heels",
					"Lower until the chest almost touches the floor",
					"Elbows about 45 degrees away from the torso",
				},
			},
			opts: []RegisterOption{
				WithFeedback(FeedbackTable{
					{Joint: "elbow", Default: missingAngle, Bands: []Band{
						Inside(100, 170, "Go lower. Bring your chest almost to the floor."),
						Within(60, 90, "Good depth! Keep it there."),
					}},
				}),
				WithCoaching(pushupCoaching),
			},
		},
		{
			exercise: Exercise{
				ID:            IDBicepCurl,
				Name:          "Bicep Curl",
				Description:   "An isolation exercise for the biceps.",
				Category:      CategoryUpper,
				Difficulty:    DifficultyBeginner,
				MET:           DefaultMET,
				TargetMuscles: []string{"biceps"},
				Angles: []AngleSpec{
					{Joint: "elbow", Points: shoulderElbowWrist, MinAngle: 20, MaxAngle: 160, Feedback: "Curl your arm all the way up"},
					{Joint: "shoulder", Points: elbowShoulderHip, MinAngle: 80, MaxAngle: 100, Feedback: "Keep your elbow pinned to your torso"},
				},
				KeyPoints: []string{
					"Pin the elbows to the torso",
					"Lift and lower slowly",
					"Pause briefly at the top",
					"Keep the wrists straight",
				},
			},
		},
		{
			exercise: Exercise{
				ID:            IDSquat,
				Name:          "Squat",
				Description:   "A basic exercise for the whole lower body.",
				Category:      CategoryLower,
				Difficulty:    DifficultyBeginner,
				MET:           5.0,
				TargetMuscles: []string{"quadriceps", "glutes", "hamstrings"},
				Angles: []AngleSpec{
					{Joint: "knee", Points: hipKneeAnkle, MinAngle: 70, MaxAngle: 170, Feedback: "Bend your knees more"},
					{Joint: "hip", Points: shoulderHipKnee, MinAngle: 70, MaxAngle: 170, Feedback: "Push your hips further back"},
					{Joint: "back", Points: shoulderHipKnee, MinAngle: 160, MaxAngle: 190, Feedback: "Keep your back straight"},
				},
				KeyPoints: []string{
					"Feet shoulder width apart",
					"Knees do not pass the toes",
					"Lower until the thighs are parallel to the floor",
					"Keep the weight on the heels",
				},
			},
			opts: []RegisterOption{
				WithFeedback(FeedbackTable{
					{Joint: "knee", Default: missingAngle, Bands: kneeDepthBands("Your knee")},
					{Joint: "hip", Default: missingAngle, Bands: []Band{
						Below(80, "Sit back more, push your hips further behind you."),
					}},
				}),
				WithCoaching(squatCoaching),
			},
		},
		{
			exercise: Exercise{
				ID:            IDLunge,
				Name:          "Lunge",
				Description:   "Builds lower body balance and strength.",
				Category:      CategoryLower,
				Difficulty:    DifficultyIntermediate,
				MET:           6.0,
				TargetMuscles: []string{"quadriceps", "glutes", "hamstrings"},
				Angles: []AngleSpec{
					{Joint: "frontKnee", Points: hipKneeAnkle, MinAngle: 70, MaxAngle: 110, Feedback: "Bend the front knee to 90 degrees"},
					{Joint: "backKnee", Points: rightHipKneeAnkle, MinAngle: 70, MaxAngle: 110, Feedback: "Bend the back knee more"},
					{Joint: "hip", Points: shoulderHipKnee, MinAngle: 160, MaxAngle: 190, Feedback: "Keep your torso upright"},
				},
				KeyPoints: []string{
					"Front knee bent to 90 degrees",
					"Back knee bent to 90 degrees, almost touching the floor",
					"Torso upright",
					"Weight on the front heel",
				},
			},
			opts: []RegisterOption{
				WithFeedback(FeedbackTable{
					{Joint: "frontKnee", Default: missingAngle, Bands: kneeDepthBands("Your front knee")},
				}),
				WithCoaching(lungeCoaching),
			},
		},
		{
			exercise: Exercise{
				ID:            IDPlank,
				Name:          "Plank",
				Description:   "A static hold that strengthens the whole core.",
				Category:      CategoryCore,
				Difficulty:    DifficultyBeginner,
				Static:        true,
				MET:           3.0,
				TargetMuscles: []string{"abs", "core"},
				Angles: []AngleSpec{
					{Joint: "hip", Points: shoulderHipKnee, MinAngle: 165, MaxAngle: 195, Feedback: "Keep your hips in line"},
					{Joint: "shoulder", Points: elbowShoulderHip, MinAngle: 80, MaxAngle: 100, Feedback: "Place your elbows right under your shoulders"},
				},
				KeyPoints: []string{
					"Elbows right under the shoulders",
					"Straight line from head to heels",
					"Brace the abs to protect the lower back",
					"Breathe steadily",
				},
			},
			opts: []RegisterOption{
				WithFeedback(FeedbackTable{
					{Joint: "hip", Default: missingAngle, Bands: []Band{
						Below(160, "Your back is sagging. Keep your body in a straight line."),
						Above(185, "Your hips are too high. Keep your body in a straight line."),
						Within(170, 180, "Perfect plank!"),
					}},
					{Joint: "shoulder", Default: 90, Bands: []Band{
						Below(80, "Extend your arms and place your elbows under your shoulders."),
					}},
				}),
				WithCoaching(plankCoaching),
			},
		},
		{
			exercise: Exercise{
				ID:            IDBurpee,
				Name:          "Burpee",
				Description:   "A high intensity full body exercise.",
				Category:      CategoryFullBody,
				Difficulty:    DifficultyAdvanced,
				MET:           10.0,
				TargetMuscles: []string{"full body"},
				Angles: []AngleSpec{
					{Joint: "knee", Points: hipKneeAnkle, MinAngle: 70, MaxAngle: 170, Feedback: "Bend your knees more in the squat phase"},
					{Joint: "hip", Points: shoulderHipKnee, MinAngle: 70, MaxAngle: 190, Feedback: "Keep your body straight in the plank phase"},
				},
				KeyPoints: []string{
					"Start in a squat",
					"Put your hands down and kick back into a plank",
					"Do one push-up",
					"Return to the squat and jump",
				},
			},
			opts: []RegisterOption{
				WithFeedback(FeedbackTable{
					{Joint: "hip", Default: missingAngle, Bands: []Band{
						AtLeast(170, "Good standing posture!"),
						Below(170, "Stand up fully."),
					}},
				}),
			},
		},
		{
			exercise: Exercise{
				ID:            IDDeadlift,
				Name:          "Deadlift",
				Description:   "A hip hinge that builds the posterior chain.",
				Category:      CategoryLower,
				Difficulty:    DifficultyIntermediate,
				MET:           DefaultMET,
				TargetMuscles: []string{"hamstrings", "glutes", "lower back"},
				Angles: []AngleSpec{
					{Joint: "hip", Points: shoulderHipKnee, MinAngle: 90, MaxAngle: 180, Feedback: "Hinge at the hips"},
					{Joint: "knee", Points: hipKneeAnkle, MinAngle: 160, MaxAngle: 180, Feedback: "Keep a soft bend in the knees"},
				},
				KeyPoints: []string{
					"Bar close to the shins",
					"Neutral spine all the way",
					"Drive through the heels",
				},
			},
			opts: []RegisterOption{
				WithCoaching(deadliftCoaching),
			},
		},
	}
}

var pushupCoaching = CoachingProfile{
	Checkpoints: []Checkpoint{
		{Joint: "elbow", Min: 80, Max: 100, Ideal: 90, Rules: []CheckRule{
			{Kind: CheckAvgBelowMin, Message: "Your elbow angle is too narrow (average {avg} degrees). Bend the elbows to {ideal} degrees on the way down, about a fist above the floor."},
			{Kind: CheckAvgAboveMax, Message: "Your elbows flare out too much (average {avg} degrees). Keep them close to your torso at about {ideal} degrees."},
			{Kind: CheckOutOfRangeShare, Threshold: 50, Message: "Your elbow angle was off for {pct}% of the workout. Slow down and focus on form."},
		}},
		{Joint: "shoulder", Min: 40, Max: 50, Ideal: 45, Rules: []CheckRule{
			{Kind: CheckAvgOffIdeal, Threshold: 10, Message: "Adjust your hand position. Place the hands slightly wider than the shoulders, wrists under the shoulders."},
		}},
		{Joint: "hip", Min: 170, Max: 180, Ideal: 175, Rules: []CheckRule{
			{Kind: CheckAvgBelowMin, Message: "Your hips are sagging (average {avg} degrees). Brace the abs and glutes to hold a straight line ({ideal} degrees)."},
		}},
		{Joint: "knee", Min: 170, Max: 180, Ideal: 175},
	},
	Fallback: []FallbackAdvice{
		{MaxScore: 60, Inclusive: true, Messages: []string{
			"Lower until your elbows reach 90 degrees, chest a fist above the floor.",
			"Keep your elbows close to your torso.",
			"Brace the abs and glutes so the body stays in one line.",
		}},
	},
	Tip:              "If your wrists hurt, make fists or use push-up bars.",
	BeginnerTip:      "Beginner tip: start with wall or knee push-ups.",
	BeginnerTipBelow: 70,
}

var squatCoaching = CoachingProfile{
	Checkpoints: []Checkpoint{
		{Joint: "knee", Min: 80, Max: 100, Ideal: 90, Rules: []CheckRule{
			{Kind: CheckLowestBelowMin, Message: "You bent your knees too deep (lowest {min} degrees). Go down only until the knee reaches {ideal} degrees."},
			{Kind: CheckShareBelow, Value: 70, Threshold: 0.3, Message: "Your knees went past your toes in {pct}% of the frames. Sit back as if onto a chair."},
		}},
		{Joint: "hip", Min: 80, Max: 100, Ideal: 90, Rules: []CheckRule{
			{Kind: CheckAvgAboveMax, Message: "Lower your hips further (average {avg} degrees, target {ideal}). A slightly wider stance helps."},
		}},
		{Joint: "ankle", Min: 70, Max: 90, Ideal: 80, Rules: []CheckRule{
			{Kind: CheckAvgBelowMin, Message: "Limited ankle mobility lifts your heels. Stretch the calves or place a small plate under the heels."},
		}},
		{Joint: "torso", Min: 165, Max: 180, Ideal: 170, Rules: []CheckRule{
			{Kind: CheckAvgBelowMin, Message: "Your torso leans too far forward (average {avg} degrees). Keep the chest up and look ahead."},
		}},
	},
	Fallback: []FallbackAdvice{
		{MaxScore: 60, Inclusive: true, Messages: []string{
			"Do not let the knees pass the toes. Push the hips back as if sitting on a chair.",
			"Keep the chest up and look ahead.",
			"Go down until the thighs are parallel to the floor, knees tracking over the toes.",
		}},
	},
	Tip:              "Do not let your knees cave in. They should always point where your toes point.",
	BeginnerTip:      "Mobility tip: stretch the ankles and hips before squatting.",
	BeginnerTipBelow: 80,
}

var lungeCoaching = CoachingProfile{
	Checkpoints: []Checkpoint{
		{Joint: "frontKnee", Min: 85, Max: 95, Ideal: 90, Rules: []CheckRule{
			{Kind: CheckAvgBelowMin, Message: "Your front knee angle is too sharp (average {avg} degrees). Hold it at {ideal} degrees and keep it behind the toes."},
			{Kind: CheckInRangeShareBelow, Threshold: 0.7, Message: "Your front knee drifts inward or outward. Keep it aligned with your toes."},
		}},
		{Joint: "backKnee", Min: 80, Max: 100, Ideal: 90, Rules: []CheckRule{
			{Kind: CheckLowestAbove, Threshold: 120, Message: "Bend the back knee deeper, down to about a fist above the floor."},
		}},
		{Joint: "hip", Min: 85, Max: 95, Ideal: 90},
		{Joint: "torso", Min: 165, Max: 180, Ideal: 175, Rules: []CheckRule{
			{Kind: CheckAvgBelowMin, Message: "Your torso leans forward (average {avg} degrees). Keep it upright at {ideal} degrees and brace your core."},
		}},
	},
	Fallback: []FallbackAdvice{
		{MaxScore: 60, Inclusive: true, Messages: []string{
			"Bend the front knee to 90 degrees and lower the back knee close to the floor.",
			"Keep the torso upright and brace your core.",
			"Spread your weight evenly over both legs.",
		}},
	},
	Tip:              "Keep your balance front to back and brace the core so the torso does not sway.",
	BeginnerTip:      "Beginner tip: hold a rail or touch a wall for balance.",
	BeginnerTipBelow: 75,
}

var plankCoaching = CoachingProfile{
	Checkpoints: []Checkpoint{
		{Joint: "shoulder", Min: 85, Max: 95, Ideal: 90, Rules: []CheckRule{
			{Kind: CheckAvgOffIdeal, Threshold: 5, Message: "Adjust your elbows so the shoulders sit right above them ({ideal} degrees)."},
		}},
		{Joint: "hip", Min: 170, Max: 180, Ideal: 175, Rules: []CheckRule{
			{Kind: CheckVariation, Threshold: 15, Message: "Your hip height is not steady (range {variation} degrees). Keep the abs tight and hold the hips at {ideal} degrees."},
			{Kind: CheckAvgBelowMin, Message: "Your hips sagged (average {avg} degrees). Pull the belly button toward the spine."},
			{Kind: CheckAvgAboveMax, Message: "Your hips are too high (average {avg} degrees). Lower them to form a straight line."},
		}},
		{Joint: "neck", Min: 170, Max: 180, Ideal: 175},
		{Joint: "spine", Min: 170, Max: 180, Ideal: 175},
	},
	Fallback: []FallbackAdvice{
		{MaxScore: 40, Messages: []string{
			"Your hips sagged. Brace the abs and glutes to form a straight line.",
			"Keep the head neutral, eyes on the floor.",
			"Place your elbows right under the shoulders.",
		}},
		{MaxScore: 70, Inclusive: true, Messages: []string{
			"Your hip height is not steady. Keep the abs engaged the whole time.",
			"Pull the belly button toward the spine.",
		}},
	},
	Tip:              "Do not hold your breath. Breathe calmly while keeping the abs tight.",
	BeginnerTip:      "Beginner tip: start with your knees on the floor and progress from there.",
	BeginnerTipBelow: 80,
}

var deadliftCoaching = CoachingProfile{
	Checkpoints: []Checkpoint{
		{Joint: "hip", Min: 90, Max: 180, Ideal: 135},
		{Joint: "knee", Min: 160, Max: 180, Ideal: 170},
		{Joint: "spine", Min: 165, Max: 180, Ideal: 175},
		{Joint: "shoulder", Min: 0, Max: 20, Ideal: 10},
	},
	Tip:              "Keep your back straight at all times. Form comes before weight.",
	BeginnerTip:      "Beginner tip: start with light weight or an empty bar.",
	BeginnerTipBelow: 75,
}
